package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"gorm.io/gorm"

	"homeneeds/internal/errors"
	"homeneeds/internal/model"
	"homeneeds/internal/repository"
)

const verificationCodeLength = 6

// CodeDelivery delivers a verification code to its recipient. Implementations
// must respect the context deadline.
type CodeDelivery interface {
	SendVerificationCode(ctx context.Context, toEmail, toName, code string) error
}

// CatalogSeeder populates a user's default item catalog. Implemented by the
// item service.
type CatalogSeeder interface {
	SeedDefaults(ctx context.Context, ownerID uint) error
}

// VerificationService is the account verification state machine. One
// implementation serves both policies: with requireCode set, accounts move
// Unverified -> code issued -> Verified; without it, Begin verifies the account
// immediately. There is no transition out of Verified.
type VerificationService interface {
	// Begin advances an account toward Verified at signup or login time. It
	// returns true when the caller must collect a code before proceeding.
	Begin(ctx context.Context, user *model.User) (codeRequired bool, err error)
	// Submit validates a code for the named account and, on success, marks it
	// verified and seeds the default catalog.
	Submit(ctx context.Context, name, code string) (*model.User, error)
	// Resend issues a fresh code, invalidating the previous one. It succeeds
	// silently for unknown names and verified accounts so the endpoint does
	// not reveal which accounts exist.
	Resend(ctx context.Context, name string) error
}

type verificationService struct {
	userRepo    repository.UserRepository
	seeder      CatalogSeeder
	mail        CodeDelivery
	requireCode bool
	codeTTL     time.Duration
	mailTimeout time.Duration
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	userRepo repository.UserRepository,
	seeder CatalogSeeder,
	mail CodeDelivery,
	requireCode bool,
	codeTTL time.Duration,
	mailTimeout time.Duration,
) VerificationService {
	return &verificationService{
		userRepo:    userRepo,
		seeder:      seeder,
		mail:        mail,
		requireCode: requireCode,
		codeTTL:     codeTTL,
		mailTimeout: mailTimeout,
	}
}

func (s *verificationService) Begin(ctx context.Context, user *model.User) (bool, error) {
	if user.IsVerified {
		return false, nil
	}

	if !s.requireCode {
		// Auto-verify policy: no code round-trip, but the one-time catalog
		// population still happens.
		if err := s.markVerified(ctx, user); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.issueCode(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

func (s *verificationService) Submit(ctx context.Context, name, code string) (*model.User, error) {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Indistinguishable from a wrong code.
			return nil, errors.ErrInvalidCode
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.IsVerified {
		return nil, errors.ErrAlreadyVerified
	}
	if user.VerificationCode == nil || user.CodeExpiry == nil {
		return nil, errors.ErrInvalidCode
	}

	// Expiry is checked before the value: a stale code never validates even
	// when it matches exactly.
	if time.Now().After(*user.CodeExpiry) {
		return nil, errors.ErrCodeExpired
	}
	if code != *user.VerificationCode {
		return nil, errors.ErrInvalidCode
	}

	if err := s.markVerified(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *verificationService) Resend(ctx context.Context, name string) error {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	// Verified accounts get the same always-ok answer as unknown names; a
	// distinct error here would leak which accounts exist.
	if user.IsVerified {
		return nil
	}
	if !s.requireCode {
		// Nothing to resend under the auto-verify policy.
		return nil
	}
	return s.issueCode(ctx, user)
}

// issueCode stores a fresh code and dispatches delivery in the background.
// Storing the code is the operation; delivery is best effort and its failure is
// logged together with the code so an operator can relay it.
func (s *verificationService) issueCode(ctx context.Context, user *model.User) error {
	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	expiry := time.Now().Add(s.codeTTL)

	if err := s.userRepo.SetVerificationCode(ctx, user.ID, code, expiry); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	user.VerificationCode = &code
	user.CodeExpiry = &expiry

	email, name := user.Email, user.Name
	timeout := s.mailTimeout
	mail := s.mail
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := mail.SendVerificationCode(ctx, email, name, code); err != nil {
			log.Printf("verification: delivery to %s failed, code %s valid until %s: %v",
				email, code, expiry.Format(time.RFC3339), err)
		}
	}()

	return nil
}

func (s *verificationService) markVerified(ctx context.Context, user *model.User) error {
	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	user.IsVerified = true
	user.VerificationCode = nil
	user.CodeExpiry = nil

	if err := s.seeder.SeedDefaults(ctx, user.ID); err != nil {
		return fmt.Errorf("seed default catalog: %w", err)
	}
	return nil
}

// generateVerificationCode returns a uniform random 6-digit numeric code.
// Codes are scoped per user; collisions across users are harmless.
func generateVerificationCode() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(verificationCodeLength), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
