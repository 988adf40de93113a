package notifications

import "context"

type SendWelcomeInput struct {
	Email string
	Name  string
}

type SendPasswordChangedInput struct {
	Email string
}

// Notifier sends transactional mail. Sends are best-effort: services log a
// failed send and move on, they never fail the triggering operation.
type Notifier interface {
	SendWelcome(ctx context.Context, input SendWelcomeInput) error
	SendPasswordChanged(ctx context.Context, input SendPasswordChangedInput) error
}
