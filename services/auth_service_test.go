package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AndresMate/amateur-league-system/models"
	"github.com/AndresMate/amateur-league-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = len(f.users) + 1
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ana",
		LastName:  "Rojas",
		Email:     "  Ana.Rojas@Example.COM ",
		Password:  "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "ana.rojas@example.com" {
		t.Errorf("got email %q, want lowercased trimmed form", user.Email)
	}
	if user.Role != models.RoleUser {
		t.Errorf("got role %q, want %q", user.Role, models.RoleUser)
	}
	if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short"})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("got %v, want ErrPasswordTooShort", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)
	ctx := context.Background()

	input := RegisterInput{Email: "a@b.com", Password: "long enough"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrUserEmailConflict) {
		t.Errorf("got %v, want ErrUserEmailConflict", err)
	}
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "ref@b.com", Password: "whistle and cards"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := svc.Login(ctx, LoginInput{Email: "Ref@B.com", Password: "whistle and cards"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ref@b.com" {
		t.Errorf("got email %q, want ref@b.com", user.Email)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "ref@b.com", Password: "wrong"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrAuthInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "ghost@b.com", Password: "whistle and cards"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrAuthInvalidCredentials", err)
	}
}
