package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/therohansaxena/AddressBook/internal/auth"
	"github.com/therohansaxena/AddressBook/internal/domain/user"
	"github.com/therohansaxena/AddressBook/internal/notifications"
	"github.com/therohansaxena/AddressBook/internal/observability"
	"github.com/therohansaxena/AddressBook/internal/security"
)

// ErrInvalidCredentials means the email exists but the password did not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, username, email, passwordHash string) (user.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type UserService struct {
	store    UserStore
	tokens   *auth.Manager
	notifier notifications.Notifier
	log      *slog.Logger
	metrics  *observability.Prom
}

func NewUserService(store UserStore, tokens *auth.Manager, notifier notifications.Notifier, log *slog.Logger, metrics *observability.Prom) *UserService {
	return &UserService{
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
		metrics:  metrics,
	}
}

// Register creates the account and fires the welcome mail off the response
// path. A failed send is logged and forgotten, never surfaced to the caller.

func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) error {
	exists, err := s.observeUserDB("users.exists", func() (bool, error) {
		return s.store.ExistsByEmail(ctx, req.Email)
	})

	if err != nil {
		return err
	}

	if exists {
		return user.ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		return err
	}

	var created user.User

	err = s.observeDB("users.create", func() error {
		var dbErr error
		created, dbErr = s.store.Create(ctx, req.Name, req.Email, hash)
		return dbErr
	})

	if err != nil {
		return err
	}

	s.notifyAsync("welcome", func(sendCtx context.Context) error {
		return s.notifier.SendWelcome(sendCtx, notifications.SendWelcomeInput{
			Email: created.Email,
			Name:  created.Username,
		})
	})

	return nil
}

// Authenticate checks the password against the stored hash and issues a
// token. Outcomes are never cached: the token has to reflect the current
// password state.

func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	var u user.User

	err := s.observeDB("users.get_by_email", func() error {
		var dbErr error
		u, dbErr = s.store.GetByEmail(ctx, email)
		return dbErr
	})

	if err != nil {
		return "", err
	}

	err = security.CheckPassword(u.PasswordHash, password)

	if err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(u.Email)
}

// ForgotPassword sets a new password for whoever can name the email. This is
// the behavior as shipped: there is no proof of identity beyond the email
// itself. Left as-is on purpose.

func (s *UserService) ForgotPassword(ctx context.Context, email, newPassword string) error {
	err := s.observeDB("users.get_by_email", func() error {
		_, dbErr := s.store.GetByEmail(ctx, email)
		return dbErr
	})

	if err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword)

	if err != nil {
		return err
	}

	err = s.observeDB("users.update_password", func() error {
		return s.store.UpdatePassword(ctx, email, hash)
	})

	if err != nil {
		return err
	}

	s.notifyPasswordChanged(email)

	return nil
}

// ResetPassword requires the current password before setting the new one.

func (s *UserService) ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	var u user.User

	err := s.observeDB("users.get_by_email", func() error {
		var dbErr error
		u, dbErr = s.store.GetByEmail(ctx, email)
		return dbErr
	})

	if err != nil {
		return err
	}

	err = security.CheckPassword(u.PasswordHash, currentPassword)

	if err != nil {
		return ErrInvalidCredentials
	}

	hash, err := security.HashPassword(newPassword)

	if err != nil {
		return err
	}

	err = s.observeDB("users.update_password", func() error {
		return s.store.UpdatePassword(ctx, email, hash)
	})

	if err != nil {
		return err
	}

	s.notifyPasswordChanged(email)

	return nil
}

func (s *UserService) notifyPasswordChanged(email string) {
	s.notifyAsync("password_changed", func(sendCtx context.Context) error {
		return s.notifier.SendPasswordChanged(sendCtx, notifications.SendPasswordChangedInput{
			Email: email,
		})
	})
}

// notifyAsync runs the send on its own goroutine with a detached context so
// a slow provider never holds up the response. Best effort, at most once.

func (s *UserService) notifyAsync(kind string, fn func(context.Context) error) {
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := fn(sendCtx)

		if err != nil {
			s.log.Warn("notification send failed", "kind", kind, "err", err)
		}
	}()
}

func (s *UserService) observeDB(op string, fn func() error) error {
	if s.metrics == nil {
		return fn()
	}

	return s.metrics.ObserveDB(op, fn)
}

func (s *UserService) observeUserDB(op string, fn func() (bool, error)) (bool, error) {
	var out bool

	err := s.observeDB(op, func() error {
		var dbErr error
		out, dbErr = fn()
		return dbErr
	})

	return out, err
}
