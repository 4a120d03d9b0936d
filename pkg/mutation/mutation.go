// Package mutation runs console write calls under an explicit per-call-site
// failure policy: silent failures are logged and swallowed, surfaced failures
// produce a notification for the user.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/interfaces"
)

// Policy decides what happens to a failed mutation.
type Policy string

const (
	PolicySilent   Policy = "silent"
	PolicySurfaced Policy = "surfaced"
)

// ParsePolicy accepts "silent" or "surfaced", case-insensitively.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicySilent:
		return PolicySilent, nil
	case PolicySurfaced:
		return PolicySurfaced, nil
	default:
		return "", fmt.Errorf("mutation: unknown policy %q", raw)
	}
}

// Site names a mutation call site.
type Site string

const (
	SiteAttributeSelect Site = "attribute.select"
	SiteAttributeClear  Site = "attribute.clear"
	SiteNumberBatch     Site = "attribute.numbers"
	SiteStringBatch     Site = "attribute.strings"
)

// DefaultPolicies returns the built-in policy per site. Attribute clears are
// silent; everything else is surfaced.
func DefaultPolicies() map[Site]Policy {
	return map[Site]Policy{
		SiteAttributeSelect: PolicySurfaced,
		SiteAttributeClear:  PolicySilent,
		SiteNumberBatch:     PolicySurfaced,
		SiteStringBatch:     PolicySurfaced,
	}
}

// NotificationKind classifies a user notification.
type NotificationKind string

const (
	NotificationError   NotificationKind = "error"
	NotificationSuccess NotificationKind = "success"
)

// Notification is shown to the user after a surfaced mutation.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	Site    Site             `json:"site"`
}

// Outcome reports how a mutation ended.
type Outcome struct {
	Site         Site
	Policy       Policy
	Err          error
	Notification *Notification
}

// Failed reports whether the mutation returned an error.
func (o Outcome) Failed() bool { return o.Err != nil }

// GenericFailureMessage is used when an error carries no user-facing text.
const GenericFailureMessage = "The request could not be completed"

// Runner applies site policies to mutation calls.
type Runner struct {
	policies map[Site]Policy
	fallback Policy
	logger   interfaces.Logger
	success  bool
}

type Option func(*Runner)

// WithPolicies overrides policies for the given sites.
func WithPolicies(policies map[Site]Policy) Option {
	return func(r *Runner) {
		for site, policy := range policies {
			r.policies[site] = policy
		}
	}
}

// WithFallback sets the policy for sites without an entry.
func WithFallback(policy Policy) Option {
	return func(r *Runner) {
		r.fallback = policy
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSuccessNotifications makes surfaced sites report successes as well.
func WithSuccessNotifications(enabled bool) Option {
	return func(r *Runner) {
		r.success = enabled
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		policies: DefaultPolicies(),
		fallback: PolicySurfaced,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Policy returns the policy applied to site.
func (r *Runner) Policy(site Site) Policy {
	if policy, ok := r.policies[site]; ok {
		return policy
	}
	return r.fallback
}

// Do runs fn under the policy for site. Failures are always logged; only
// surfaced sites get a notification. Do never returns the error itself, the
// caller reads it from the outcome.
func (r *Runner) Do(ctx context.Context, site Site, fn func(context.Context) error) Outcome {
	policy := r.Policy(site)
	outcome := Outcome{Site: site, Policy: policy}
	if fn == nil {
		return outcome
	}

	err := fn(ctx)
	if err == nil {
		if policy == PolicySurfaced && r.success {
			outcome.Notification = &Notification{Kind: NotificationSuccess, Site: site, Message: "Saved"}
		}
		return outcome
	}

	outcome.Err = err
	r.logger.WithContext(ctx).Error("mutation failed", "site", string(site), "policy", string(policy), "error", err)
	if policy == PolicySurfaced {
		outcome.Notification = &Notification{
			Kind:    NotificationError,
			Site:    site,
			Message: UserMessage(err),
		}
	}
	return outcome
}

// UserMessage extracts a displayable message from err. Internal and 5xx
// errors always yield GenericFailureMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if !errors.As(err, &richErr) || strings.TrimSpace(richErr.Message) == "" {
		return GenericFailureMessage
	}
	if richErr.Category == goerrors.CategoryInternal || richErr.Code >= 500 {
		return GenericFailureMessage
	}
	return richErr.Message
}
