package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

const (
	minPasswordLength = 6
	signupLockTTL     = 10 * time.Second
)

// SignupLocker serializes concurrent signups for the same normalized email.
// It only narrows the race window; the store's unique constraint decides.
type SignupLocker interface {
	AcquireSignupLock(ctx context.Context, email string, ttl time.Duration) (bool, error)
	ReleaseSignupLock(ctx context.Context, email string) error
}

// AuthService handles signup, login and bearer token verification.
type AuthService struct {
	userRepo   repository.UserRepository
	hasher     auth.PasswordHasher
	tokens     auth.TokenIssuer
	signupLock SignupLocker

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService. signupLock may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	signupLock SignupLocker,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		tokens:     tokens,
		signupLock: signupLock,
	}
}

// SignupRequest contains the parameters for creating an account.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest contains the parameters for logging in.
type LoginRequest struct {
	Email    string
	Password string
}

// UserSummary is the public view of a user. It never carries credentials.
type UserSummary struct {
	ID    int64
	Name  string
	Email string
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token string
	User  UserSummary
}

// Signup validates the request, creates the user and issues a token.
// Checks run in a fixed order and the first failure wins.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	if passwordLength(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailInUse
	}

	if s.signupLock != nil {
		acquired, err := s.signupLock.AcquireSignupLock(ctx, email, signupLockTTL)
		switch {
		case err != nil:
			log.Printf("signup lock unavailable: %v", err)
		case !acquired:
			// Another signup for this email is in flight. It may still fail,
			// so only the unique constraint can say the email is taken.
		default:
			defer func() {
				if err := s.signupLock.ReleaseSignupLock(context.WithoutCancel(ctx), email); err != nil {
					log.Printf("failed to release signup lock: %v", err)
				}
			}()
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := domain.NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.burnVerify(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		log.Printf("corrupt credential for user %d: %v", user.ID, err)
		return nil, wrap(ErrCorruptCredential, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate verifies a bearer token and returns its claims.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*auth.Claims, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, wrap(ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{
		Token: token,
		User:  summarizeUser(user),
	}, nil
}

// burnVerify runs a verification against a throwaway hash so unknown
// emails cost about as much as wrong passwords.
func (s *AuthService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			log.Printf("failed to prepare dummy hash: %v", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}

// passwordLength counts UTF-16 code units, so a character outside the
// Basic Multilingual Plane counts as two.
func passwordLength(password string) int {
	return len(utf16.Encode([]rune(password)))
}

func summarizeUser(user *domain.User) UserSummary {
	return UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
