package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"techshop/internal/domain"
	userrepo "techshop/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserExists is returned when the email or username is taken.
	ErrUserExists = errors.New("a user with this email or username already exists")
	// ErrInvalidInput wraps all registration field validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^09\d{9}$`)
)

// Service handles registration and login and issues the identity tokens
// the rest of the API consumes.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	usernameMin int
	passwordMin int
}

// New creates a Service issuing HS256 tokens signed with secret.
func New(repo userrepo.Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager([]byte(secret), tokenTTL),
		usernameMin: 3,
		passwordMin: 6,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func (s *Service) validateRegister(in RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return fmt.Errorf("%w: first name required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.LastName) == "" {
		return fmt.Errorf("%w: last name required", ErrInvalidInput)
	}
	if !emailRe.MatchString(strings.TrimSpace(in.Email)) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if !phoneRe.MatchString(strings.TrimSpace(in.Phone)) {
		return fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
	}
	if len(strings.TrimSpace(in.Username)) < s.usernameMin {
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, s.usernameMin)
	}
	if len(in.Password) < s.passwordMin {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.passwordMin)
	}
	return nil
}

// Register creates a user with role "user" and returns it with a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if err := s.validateRegister(in); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.repo.Create(ctx, domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login validates credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Verify decodes a bearer token into the identity it carries.
func (s *Service) Verify(token string) (Identity, error) {
	return s.tokens.Verify(token)
}
