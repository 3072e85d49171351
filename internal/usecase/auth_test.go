package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{})

	ctx := context.Background()
	user, err := uc.Register(ctx, model.Registration{Name: "Alice", Email: "a@example.com", Username: " alice ", Password: "password"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected default customer role, got %q", user.Role)
	}
	stored, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
	if stored.PasswordHash == "password" {
		t.Fatalf("plaintext password stored")
	}
}

func TestAuthUseCaseRegisterKeepsRole(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{})

	user, err := uc.Register(context.Background(), model.Registration{Username: "root", Password: "x", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{})

	cases := []model.Registration{
		{Username: "", Password: "x"},
		{Username: "   ", Password: "x"},
		{Username: "bob", Password: ""},
	}
	for _, reg := range cases {
		if _, err := uc.Register(context.Background(), reg); !errors.Is(err, domainErrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", reg, err)
		}
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{})

	ctx := context.Background()
	reg := model.Registration{Username: "bob", Password: "secret"}
	if _, err := uc.Register(ctx, reg); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, err := uc.Register(ctx, reg); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterHashError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	hasher := testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", errors.New("hash fail") }}
	uc := NewAuthUseCase(repo, hasher)

	if _, err := uc.Register(context.Background(), model.Registration{Username: "bob", Password: "pw"}); err == nil {
		t.Fatal("expected hash error")
	}
	if len(repo.Users) != 0 {
		t.Fatalf("user stored despite hash failure")
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{})

	ctx := context.Background()
	if _, err := uc.Register(ctx, model.Registration{Username: "carol", Password: "123456"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := uc.Authenticate(ctx, "carol", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, err := uc.Authenticate(ctx, "nobody", "123456"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
	if _, err := uc.Authenticate(ctx, "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty input, got %v", err)
	}

	user, err := uc.Authenticate(ctx, "carol", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthUseCaseAuthenticateStoreError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = domainErrors.ErrStoreUnavailable
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{})

	_, err := uc.Authenticate(context.Background(), "carol", "pw")
	if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected store error to pass through, got %v", err)
	}
}

func TestAuthUseCaseProfile(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{})

	ctx := context.Background()
	created, err := uc.Register(ctx, model.Registration{Username: "dave", Password: "pw"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := uc.Profile(ctx, created.ID)
	if err != nil || user.Username != "dave" {
		t.Fatalf("unexpected profile %+v err %v", user, err)
	}

	if _, err := uc.Profile(ctx, 999); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
