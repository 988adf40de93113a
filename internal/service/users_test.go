package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/therohansaxena/AddressBook/internal/auth"
	"github.com/therohansaxena/AddressBook/internal/domain/user"
	"github.com/therohansaxena/AddressBook/internal/notifications"
	"github.com/therohansaxena/AddressBook/internal/repo/memory"
	"github.com/therohansaxena/AddressBook/internal/service"
)

// fake notifier recording sends on channels so tests can wait for the
// fire-and-forget goroutine

type fakeNotifier struct {
	welcome         chan notifications.SendWelcomeInput
	passwordChanged chan notifications.SendPasswordChangedInput
	fail            bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		welcome:         make(chan notifications.SendWelcomeInput, 8),
		passwordChanged: make(chan notifications.SendPasswordChangedInput, 8),
	}
}

func (f *fakeNotifier) SendWelcome(ctx context.Context, in notifications.SendWelcomeInput) error {
	f.welcome <- in
	if f.fail {
		return errors.New("provider down")
	}
	return nil
}

func (f *fakeNotifier) SendPasswordChanged(ctx context.Context, in notifications.SendPasswordChangedInput) error {
	f.passwordChanged <- in
	if f.fail {
		return errors.New("provider down")
	}
	return nil
}

func newUserService(notifier notifications.Notifier) (*service.UserService, *memory.UsersRepo) {
	repo := memory.NewUsersRepo()
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := service.NewUserService(repo, tokens, notifier, discardLogger(), nil)

	return svc, repo
}

func registerReq() user.RegisterRequest {
	return user.RegisterRequest{
		Name:     "TestUser",
		Email:    "test@example.com",
		Password: "password123",
	}
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	notifier := newFakeNotifier()
	svc, repo := newUserService(notifier)

	err := svc.Register(ctx, registerReq())

	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := repo.GetByEmail(ctx, "test@example.com")

	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}

	if u.PasswordHash == "password123" {
		t.Fatal("password must be stored hashed")
	}

	select {
	case in := <-notifier.welcome:
		if in.Email != "test@example.com" || in.Name != "TestUser" {
			t.Fatalf("unexpected welcome input: %+v", in)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a welcome notification")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(newFakeNotifier())

	if err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	err := svc.Register(ctx, registerReq())

	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterSucceedsWhenNotifierFails(t *testing.T) {
	ctx := context.Background()
	notifier := newFakeNotifier()
	notifier.fail = true
	svc, repo := newUserService(notifier)

	err := svc.Register(ctx, registerReq())

	if err != nil {
		t.Fatalf("a dead notifier must not fail registration: %v", err)
	}

	if _, err := repo.GetByEmail(ctx, "test@example.com"); err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(newFakeNotifier())

	if err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("success yields a token", func(t *testing.T) {
		token, err := svc.Authenticate(ctx, "test@example.com", "password123")

		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}

		if token == "" {
			t.Fatal("expected a non-empty token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "test@example.com", "wrong-password")

		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "password123")

		if !errors.Is(err, user.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	notifier := newFakeNotifier()
	svc, _ := newUserService(notifier)

	if err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := svc.ForgotPassword(ctx, "test@example.com", "newPassword123")

	if err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}

	// old password no longer works, new one does
	if _, err := svc.Authenticate(ctx, "test@example.com", "password123"); err == nil {
		t.Fatal("old password must stop working")
	}

	if _, err := svc.Authenticate(ctx, "test@example.com", "newPassword123"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}

	select {
	case in := <-notifier.passwordChanged:
		if in.Email != "test@example.com" {
			t.Fatalf("unexpected notification input: %+v", in)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a password-changed notification")
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newUserService(newFakeNotifier())

	err := svc.ForgotPassword(context.Background(), "nobody@example.com", "newPassword123")

	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(newFakeNotifier())

	if err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "test@example.com", "wrong-password", "newPassword123")

		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "nobody@example.com", "password123", "newPassword123")

		if !errors.Is(err, user.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "test@example.com", "password123", "newPassword123")

		if err != nil {
			t.Fatalf("ResetPassword: %v", err)
		}

		if _, err := svc.Authenticate(ctx, "test@example.com", "newPassword123"); err != nil {
			t.Fatalf("new password must work: %v", err)
		}
	})
}
