package mutation

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/pkg/interfaces"
)

type capturingLogger struct {
	errors []string
}

func (c *capturingLogger) Trace(string, ...any)       {}
func (c *capturingLogger) Debug(string, ...any)       {}
func (c *capturingLogger) Info(string, ...any)        {}
func (c *capturingLogger) Warn(string, ...any)        {}
func (c *capturingLogger) Error(msg string, _ ...any) { c.errors = append(c.errors, msg) }
func (c *capturingLogger) Fatal(string, ...any)       {}

func (c *capturingLogger) WithContext(context.Context) interfaces.Logger { return c }

func TestRunner_SilentFailureIsLoggedNotSurfaced(t *testing.T) {
	logger := &capturingLogger{}
	r := NewRunner(WithLogger(logger))

	out := r.Do(context.Background(), SiteAttributeClear, func(context.Context) error {
		return errors.New("boom")
	})

	if !out.Failed() || out.Policy != PolicySilent {
		t.Fatalf("unexpected outcome: %#v", out)
	}
	if out.Notification != nil {
		t.Fatalf("silent site should not notify, got %#v", out.Notification)
	}
	if len(logger.errors) != 1 {
		t.Fatalf("expected failure to be logged once, got %d", len(logger.errors))
	}
}

func TestRunner_SurfacedFailureNotifies(t *testing.T) {
	r := NewRunner()
	out := r.Do(context.Background(), SiteNumberBatch, func(context.Context) error {
		return goerrors.New("Attribute not found", goerrors.CategoryNotFound)
	})

	if out.Notification == nil || out.Notification.Kind != NotificationError {
		t.Fatalf("expected error notification, got %#v", out.Notification)
	}
	if out.Notification.Message != "Attribute not found" {
		t.Fatalf("unexpected message %q", out.Notification.Message)
	}
}

func TestRunner_PlainErrorsUseGenericMessage(t *testing.T) {
	out := NewRunner().Do(context.Background(), SiteAttributeSelect, func(context.Context) error {
		return errors.New("pq: connection refused")
	})
	if out.Notification == nil || out.Notification.Message != GenericFailureMessage {
		t.Fatalf("expected generic message, got %#v", out.Notification)
	}
}

func TestRunner_InternalErrorsUseGenericMessage(t *testing.T) {
	out := NewRunner().Do(context.Background(), SiteNumberBatch, func(context.Context) error {
		return goerrors.Wrap(errors.New("disk full"), goerrors.CategoryInternal, "store attribute values")
	})
	if out.Notification == nil || out.Notification.Message != GenericFailureMessage {
		t.Fatalf("expected generic message, got %#v", out.Notification)
	}

	unavailable := goerrors.New("upstream catalog down", goerrors.CategoryExternal).WithCode(503)
	if got := UserMessage(unavailable); got != GenericFailureMessage {
		t.Fatalf("5xx message leaked: %q", got)
	}
}

func TestRunner_OverridesAndFallback(t *testing.T) {
	r := NewRunner(
		WithPolicies(map[Site]Policy{SiteAttributeClear: PolicySurfaced}),
		WithFallback(PolicySilent),
	)
	if r.Policy(SiteAttributeClear) != PolicySurfaced {
		t.Fatalf("override not applied")
	}
	if r.Policy(Site("unknown")) != PolicySilent {
		t.Fatalf("fallback not applied")
	}
}

func TestRunner_SuccessNotifications(t *testing.T) {
	r := NewRunner(WithSuccessNotifications(true))
	out := r.Do(context.Background(), SiteStringBatch, func(context.Context) error { return nil })
	if out.Failed() || out.Notification == nil || out.Notification.Kind != NotificationSuccess {
		t.Fatalf("expected success notification, got %#v", out)
	}
	out = r.Do(context.Background(), SiteAttributeClear, func(context.Context) error { return nil })
	if out.Notification != nil {
		t.Fatalf("silent site should not notify on success")
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy(" Silent "); err != nil || p != PolicySilent {
		t.Fatalf("unexpected parse result %q, %v", p, err)
	}
	if _, err := ParsePolicy("loud"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
