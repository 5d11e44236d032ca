package app

import "github.com/cockroachdb/errors"

var (
	ErrNoEligibilityData = errors.New("no eligibility data")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNotFound          = errors.New("resource not found")

	// ErrFailure marks collaborator errors (store down, lookup error, timeout).
	// The original cause stays reachable through errors.Unwrap.
	ErrFailure = errors.New("infrastructure failure")
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNoEligibilityData
	OutcomeAccessDenied
	OutcomeInvalidIdentifier
	OutcomeNotFound
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoEligibilityData:
		return "no_eligibility_data"
	case OutcomeAccessDenied:
		return "access_denied"
	case OutcomeInvalidIdentifier:
		return "invalid_identifier"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "failure"
	}
}

// OutcomeOf classifies an error returned by QueryService.
// Anything unrecognised counts as a failure.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrNoEligibilityData):
		return OutcomeNoEligibilityData
	case errors.Is(err, ErrAccessDenied):
		return OutcomeAccessDenied
	case errors.Is(err, ErrInvalidIdentifier):
		return OutcomeInvalidIdentifier
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeFailure
	}
}

func failure(op string, err error) error {
	return errors.Mark(errors.Wrap(err, op), ErrFailure)
}
