package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chargebay/internal/models"
	"chargebay/internal/password"
)

// ErrWrongPassword is returned when the current password does not match on
// a password change.
var ErrWrongPassword = errors.New("user: current password is incorrect")

// UserService covers profile management.
type UserService struct {
	users  UserStore
	hasher password.Hasher
	logger *zap.Logger
}

// NewUserService builds service.
func NewUserService(users UserStore, hasher password.Hasher, logger *zap.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, logger: logger}
}

// GetProfile returns the caller's account.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// ListUsers returns all accounts for admin views.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

// UpdateProfileInput carries partial profile edits; nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name          *string
	Phone         *string
	VehicleNumber *string
	VehicleType   *string
	VehicleBrand  *string
	VehicleModel  *string
}

// UpdateProfile applies the provided fields to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.VehicleNumber != nil {
		user.VehicleNumber = *input.VehicleNumber
	}
	if input.VehicleType != nil {
		user.VehicleType = *input.VehicleType
	}
	if input.VehicleBrand != nil {
		user.VehicleBrand = *input.VehicleBrand
	}
	if input.VehicleModel != nil {
		user.VehicleModel = *input.VehicleModel
	}

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.users.UpdateUserPassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Int64("user_id", userID))
	return nil
}

// GetUserVehicle returns the vehicle fields of the caller's profile.
func (s *UserService) GetUserVehicle(ctx context.Context, userID int64) (map[string]string, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"brand":  user.VehicleBrand,
		"model":  user.VehicleModel,
		"type":   user.VehicleType,
		"number": user.VehicleNumber,
	}, nil
}

// SaveUserVehicle updates only the vehicle fields of the caller's profile.
func (s *UserService) SaveUserVehicle(ctx context.Context, userID int64, brand, model, vehicleType, number string) error {
	input := UpdateProfileInput{}
	if brand != "" {
		input.VehicleBrand = &brand
	}
	if model != "" {
		input.VehicleModel = &model
	}
	if vehicleType != "" {
		input.VehicleType = &vehicleType
	}
	if number != "" {
		input.VehicleNumber = &number
	}
	_, err := s.UpdateProfile(ctx, userID, input)
	return err
}
