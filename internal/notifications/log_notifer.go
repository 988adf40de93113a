package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) SendWelcome(ctx context.Context, in SendWelcomeInput) error {
	err := simulateProvider(ctx)

	if err != nil {
		return err
	}

	log.Printf("notification.welcome email=%s name=%s", in.Email, in.Name)
	return nil
}

func (n *LogNotifier) SendPasswordChanged(ctx context.Context, in SendPasswordChangedInput) error {
	err := simulateProvider(ctx)

	if err != nil {
		return err
	}

	log.Printf("notification.password_changed email=%s", in.Email)
	return nil
}

func simulateProvider(ctx context.Context) error {
	// Optional: simulate slow provider
	if msStr := os.Getenv("NOTIFIER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	// Optional: simulate provider outage
	if os.Getenv("NOTIFIER_FAIL") == "1" {
		return fmt.Errorf("provider down (simulated)")
	}

	return nil
}
