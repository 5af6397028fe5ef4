package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Repositories are
// written against it so the same code runs pooled or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store bundles all repositories over one connection pool. The embedded
// repositories expose their methods directly on the store, so a *Store
// satisfies the per-service storage contracts in the service package.
type Store struct {
	db *sql.DB

	*UserRepository
	*StationRepository
	*BookingRepository
	*ReviewRepository
	*VehicleRepository
}

// NewStore builds a pool-bound store.
func NewStore(pool *sql.DB) *Store {
	return &Store{
		db:                pool,
		UserRepository:    NewUserRepository(pool),
		StationRepository: NewStationRepository(pool),
		BookingRepository: NewBookingRepository(pool),
		ReviewRepository:  NewReviewRepository(pool),
		VehicleRepository: NewVehicleRepository(pool),
	}
}

// InTx runs fn against a store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise, so
// paired writes (a booking row and its station's slot counter) are durable
// together or not at all.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return fmt.Errorf("repository: store is already transaction-bound")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin tx: %w", err)
	}

	txStore := &Store{
		UserRepository:    NewUserRepository(tx),
		StationRepository: NewStationRepository(tx),
		BookingRepository: NewBookingRepository(tx),
		ReviewRepository:  NewReviewRepository(tx),
		VehicleRepository: NewVehicleRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("repository: rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}
