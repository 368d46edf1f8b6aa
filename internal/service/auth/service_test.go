package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"techshop/internal/domain"
	userrepo "techshop/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created    *domain.User
	createErr  error
	byUsername *domain.User
	getErr     error
	lastCreate domain.User
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastCreate = u
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := u
	out.ID = "u1"
	return &out, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.byUsername, s.getErr
}

func (s *stubUserRepo) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.byUsername, nil
}

func (s *stubUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserRepo) Update(_ context.Context, _ string, _ userrepo.UpdateInput) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Delete(_ context.Context, _ string) error { return nil }

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Sara",
		LastName:  "Mohammadi",
		Email:     "sara@example.com",
		Phone:     "09123456789",
		Username:  "sara",
		Password:  "secret1",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := New(&stubUserRepo{}, "test-secret", time.Hour)
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing first name", func(in *RegisterInput) { in.FirstName = " " }},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"bad phone", func(in *RegisterInput) { in.Phone = "021555" }},
		{"phone wrong prefix", func(in *RegisterInput) { in.Phone = "08123456789" }},
		{"short username", func(in *RegisterInput) { in.Username = "ab" }},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, _, err := svc.Register(context.Background(), in); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestRegisterHappyPath(t *testing.T) {
	repo := &stubUserRepo{}
	svc := New(repo, "test-secret", time.Hour)
	user, token, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %q", user.Role)
	}
	if repo.lastCreate.Email != "sara@example.com" {
		t.Fatalf("email not normalized: %q", repo.lastCreate.Email)
	}
	if repo.lastCreate.PasswordHash == "secret1" || repo.lastCreate.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != user.ID || id.Username != user.Username || id.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	repo := &stubUserRepo{createErr: domain.ErrAlreadyExists}
	svc := New(repo, "test-secret", time.Hour)
	if _, _, err := svc.Register(context.Background(), validInput()); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &stubUserRepo{getErr: domain.ErrNotFound}
	svc := New(repo, "test-secret", time.Hour)
	if _, _, err := svc.Login(context.Background(), "ghost", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	repo := &stubUserRepo{byUsername: &domain.User{ID: "u1", Username: "sara", PasswordHash: string(hash)}}
	svc := New(repo, "test-secret", time.Hour)
	if _, _, err := svc.Login(context.Background(), "sara", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	repo := &stubUserRepo{byUsername: &domain.User{ID: "u1", Username: "sara", Role: domain.RoleAdmin, PasswordHash: string(hash)}}
	svc := New(repo, "test-secret", time.Hour)
	user, token, err := svc.Login(context.Background(), "sara", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != user.ID || id.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := New(&stubUserRepo{}, "test-secret", time.Hour)
	for _, token := range []string{"", "garbage", strings.Repeat("a.", 40)} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	repo := &stubUserRepo{byUsername: &domain.User{ID: "u1", Username: "sara", PasswordHash: string(hash)}}
	svc := New(repo, "test-secret", -time.Minute)
	_, token, err := svc.Login(context.Background(), "sara", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	repo := &stubUserRepo{byUsername: &domain.User{ID: "u1", Username: "sara", PasswordHash: string(hash)}}
	issuer := New(repo, "secret-a", time.Hour)
	verifier := New(repo, "secret-b", time.Hour)
	_, token, err := issuer.Login(context.Background(), "sara", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
