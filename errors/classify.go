package errors

import (
	stderrors "errors"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the closed taxonomy every external failure is translated into.
// Classification happens exactly once, at the boundary where the failure is
// first observed; everything downstream matches on the Kind.
type Kind int

const (
	KindOther Kind = iota
	KindNetwork
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	default:
		return "other"
	}
}

// Severity drives how prominently a failure is surfaced.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	default:
		return "high"
	}
}

// Classified wraps an uncontrolled error with its resolved Kind.
type Classified struct {
	Kind Kind
	Err  error
}

func (c Classified) Error() string {
	return c.Kind.String() + ": " + c.Err.Error()
}

func (c Classified) Unwrap() error {
	return c.Err
}

var networkHints = []string{"network", "fetch", "timeout", "connection", "offline"}

var validationHints = []string{"validation", "invalid", "required", "format"}

var retryableHints = []string{"temporary", "rate limit", "service unavailable", "internal server error"}

// Classify translates an arbitrary error into the closed taxonomy.
// Typed errors are preferred; message sniffing is the fallback for errors
// produced outside our control.
func Classify(err error) Classified {
	if err == nil {
		return Classified{Kind: KindOther, Err: err}
	}
	var classified Classified
	if stderrors.As(err, &classified) {
		return classified
	}
	if IsNetwork(err) {
		return Classified{Kind: KindNetwork, Err: err}
	}
	if IsValidation(err) {
		return Classified{Kind: KindValidation, Err: err}
	}
	return Classified{Kind: KindOther, Err: err}
}

// IsNetwork reports whether the error looks like a transport failure.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}
	return containsAny(err.Error(), networkHints)
}

// IsValidation reports whether the error denotes rejected input.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var vErrs validator.ValidationErrors
	if stderrors.As(err, &vErrs) {
		return true
	}
	if stderrors.Is(err, ErrEmptyContent) ||
		stderrors.Is(err, ErrContentTooLong) ||
		stderrors.Is(err, ErrInvalidIdentifier) ||
		stderrors.Is(err, ErrInvalidTheme) {
		return true
	}
	return containsAny(err.Error(), validationHints)
}

// Retryable reports whether retrying the failed operation may succeed.
// Validation failures never become retryable, whatever their message says.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	switch Classify(err).Kind {
	case KindValidation:
		return false
	case KindNetwork:
		return true
	}
	return containsAny(err.Error(), retryableHints)
}

// SeverityOf maps each kind to its display severity.
func SeverityOf(err error) Severity {
	switch Classify(err).Kind {
	case KindNetwork:
		return SeverityMedium
	case KindValidation:
		return SeverityLow
	default:
		return SeverityHigh
	}
}

func containsAny(msg string, hints []string) bool {
	lower := strings.ToLower(msg)
	for _, hint := range hints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
