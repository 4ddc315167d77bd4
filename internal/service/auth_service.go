package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homeneeds/internal/auth"
	"homeneeds/internal/errors"
	"homeneeds/internal/model"
	"homeneeds/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

// AuthResult is the outcome of a register, login or verify operation. When
// VerificationRequired is set no tokens are issued; the caller must submit a
// code first.
type AuthResult struct {
	User                 *model.User
	AccessToken          string
	RefreshToken         string
	VerificationRequired bool
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password, confirmPassword string, dob *time.Time) (*AuthResult, error)
	Login(ctx context.Context, name, password string) (*AuthResult, error)
	// TokensFor mints a token pair for an already-verified user; used after a
	// successful code submission.
	TokensFor(ctx context.Context, user *model.User) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	verifier   VerificationService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	verifier VerificationService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		verifier:   verifier,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new unverified account and advances it through the
// verification state machine.
func (s *authService) Register(ctx context.Context, name, email, password, confirmPassword string, dob *time.Time) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	// The required validator passes whitespace-only names; they must not
	// become empty usernames after trimming.
	if name == "" {
		return nil, errors.ErrInvalidName
	}
	if len(password) < minPasswordLength {
		return nil, errors.ErrWeakPassword
	}
	if password != confirmPassword {
		return nil, errors.ErrPasswordMismatch
	}

	if existing, err := s.userRepo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, errors.ErrDuplicateName
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.ErrDuplicateEmail
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		DOB:          dob,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	codeRequired, err := s.verifier.Begin(ctx, user)
	if err != nil {
		return nil, err
	}
	if codeRequired {
		return &AuthResult{User: user, VerificationRequired: true}, nil
	}
	return s.TokensFor(ctx, user)
}

// Login authenticates an account. Unverified accounts are pushed back into the
// verification flow instead of receiving tokens.
func (s *authService) Login(ctx context.Context, name, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		codeRequired, err := s.verifier.Begin(ctx, user)
		if err != nil {
			return nil, err
		}
		if codeRequired {
			return &AuthResult{User: user, VerificationRequired: true}, nil
		}
	}

	return s.TokensFor(ctx, user)
}

// TokensFor mints an access/refresh pair and records the refresh token.
func (s *authService) TokensFor(ctx context.Context, user *model.User) (*AuthResult, error) {
	if !user.IsVerified {
		return nil, errors.ErrNotVerified
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Name, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	storedUserID, storedName, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}
	if storedUserID != claims.UserID || storedName != claims.Name {
		return "", errors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Name)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidCredentials
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
