package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"chargebay/internal/models"
	"chargebay/internal/otp"
	"chargebay/internal/password"
	"chargebay/internal/repository"
)

var (
	// ErrEmailInUse is returned when registering a duplicate email.
	ErrEmailInUse = errors.New("auth: email already registered")
	// ErrInvalidCredentials represents a login failure.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidOTP represents a failed one-time-code verification.
	ErrInvalidOTP = errors.New("auth: invalid or expired code")
)

// OTPStore keeps pending one-time login codes.
type OTPStore interface {
	Put(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) (bool, error)
}

// Mailer sends plain-text mail.
type Mailer interface {
	Send(to, subject, body string) error
}

// AuthService contains registration and login logic.
type AuthService struct {
	users     UserStore
	hasher    password.Hasher
	tokenizer *TokenService
	otps      OTPStore
	mailer    Mailer
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(users UserStore, hasher password.Hasher, tokenizer *TokenService, otps OTPStore, mailer Mailer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokenizer: tokenizer,
		otps:      otps,
		mailer:    mailer,
		logger:    logger,
	}
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	Email         string
	Name          string
	Password      string
	Phone         string
	Role          string
	VehicleNumber string
	VehicleType   string
	VehicleBrand  string
	VehicleModel  string
}

// AuthResult pairs the issued token with the account it belongs to.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, errors.New("auth: email required")
	}
	if input.Password == "" {
		return nil, errors.New("auth: password required")
	}
	if input.Name == "" {
		return nil, errors.New("auth: name required")
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         email,
		Name:          input.Name,
		PasswordHash:  hash,
		Phone:         input.Phone,
		Role:          role,
		VehicleNumber: input.VehicleNumber,
		VehicleType:   input.VehicleType,
		VehicleBrand:  input.VehicleBrand,
		VehicleModel:  input.VehicleModel,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenizer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates with email and password.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" {
		// External-auth account, no password to compare.
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// SendOTP mails a fresh one-time login code to a registered address.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetUserByEmail(ctx, email); err != nil {
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}
	if err := s.otps.Put(ctx, email, code); err != nil {
		return err
	}

	body := fmt.Sprintf("Your ChargeBay login code is: %s\n\nThe code is valid for 5 minutes.", code)
	if err := s.mailer.Send(email, "ChargeBay login code", body); err != nil {
		return err
	}

	s.logger.Info("otp sent", zap.String("email", email))
	return nil
}

// LoginWithOTP verifies a mailed code and signs the user in.
func (s *AuthService) LoginWithOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	ok, err := s.otps.Verify(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(user)
}

// RegisterExternal signs in a user vouched for by an external identity
// provider, creating a passwordless account on first contact.
func (s *AuthService) RegisterExternal(ctx context.Context, email, name string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("auth: email required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &models.User{
			Email: email,
			Name:  name,
			Role:  models.RoleUser,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("external user registered", zap.Int64("user_id", user.ID), zap.String("email", email))
	} else if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokenizer.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
