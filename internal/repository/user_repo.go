package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargebay/internal/models"
)

// ErrUserNotFound indicates a missing user id or email.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles persistence of user accounts.
type UserRepository struct {
	db DBTX
}

// NewUserRepository returns repository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, phone, role,
	vehicle_number, vehicle_type, vehicle_brand, vehicle_model, created_at, updated_at`

// CreateUser inserts a user and fills in generated fields.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (email, name, password_hash, phone, role,
			vehicle_number, vehicle_type, vehicle_brand, vehicle_model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.VehicleNumber,
		user.VehicleType,
		user.VehicleBrand,
		user.VehicleModel,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetUser returns the user by id.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetUserByEmail returns the user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// UpdateUserProfile persists profile and vehicle fields. The role and
// password hash are deliberately left untouched.
func (r *UserRepository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET name = $2,
		    phone = $3,
		    vehicle_number = $4,
		    vehicle_type = $5,
		    vehicle_brand = $6,
		    vehicle_model = $7,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.VehicleNumber,
		user.VehicleType,
		user.VehicleBrand,
		user.VehicleModel,
	)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

// UpdateUserPassword replaces only the stored password hash.
func (r *UserRepository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(result, ErrUserNotFound)
}

// ListUsers returns all accounts.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Phone, &u.Role,
			&u.VehicleNumber, &u.VehicleType, &u.VehicleBrand, &u.VehicleModel,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Phone, &u.Role,
		&u.VehicleNumber, &u.VehicleType, &u.VehicleBrand, &u.VehicleModel,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// requireRow maps a zero-row update to the given sentinel.
func requireRow(result sql.Result, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}
