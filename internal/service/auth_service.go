package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/auth"
	"fleet-service/internal/model"
)

const minPasswordLength = 6

// Demo accounts are bootstrapped on first use instead of being seeded.
const (
	demoAdminEmail = "admin@fleetpro.com"
	demoUserEmail  = "user@fleetpro.com"
)

type AccountStore interface {
	Create(ctx context.Context, user *model.User, profile *model.Profile) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}

type AuthService struct {
	accounts     AccountStore
	issuer       *auth.Issuer
	demoPassword string
}

func NewAuthService(accounts AccountStore, issuer *auth.Issuer, demoPassword string) *AuthService {
	return &AuthService{
		accounts:     accounts,
		issuer:       issuer,
		demoPassword: demoPassword,
	}
}

type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

type Session struct {
	Token   string        `json:"token"`
	Profile model.Profile `json:"profile"`
}

// SignUp validates the credentials before touching the account store: a
// mismatched confirmation or a short password never reaches the database.
// New accounts always get the plain user role.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if input.Password != input.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidInput)
	}

	return s.createAccount(ctx, email, input.Password, input.FullName, model.UserRoleUser)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.accounts.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.accounts.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, profile.Role)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Profile: *profile}, nil
}

// DemoSignIn signs in the fixed demo account for the role, creating it first
// when it does not exist yet. The account-exists decision rides on the
// structured credentials error, not on matching a message substring.
func (s *AuthService) DemoSignIn(ctx context.Context, role model.UserRole) (*Session, error) {
	var email, fullName string
	switch role {
	case model.UserRoleAdmin:
		email, fullName = demoAdminEmail, "Demo Admin"
	case model.UserRoleUser:
		email, fullName = demoUserEmail, "Demo User"
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	session, err := s.SignIn(ctx, email, s.demoPassword)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		return nil, err
	}

	if _, err := s.createAccount(ctx, email, s.demoPassword, fullName, role); err != nil {
		return nil, err
	}

	return s.SignIn(ctx, email, s.demoPassword)
}

func (s *AuthService) Profile(ctx context.Context, principal model.Principal) (*model.Profile, error) {
	profile, err := s.accounts.GetProfileByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) createAccount(ctx context.Context, email, password, fullName string, role model.UserRole) (*model.Profile, error) {
	if _, err := s.accounts.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, PasswordHash: hash}
	profile := &model.Profile{
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
	if err := s.accounts.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
