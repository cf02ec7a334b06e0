package engine

import "errors"

// ErrInvalidInput marks errors caused by values the engine cannot evaluate.
// Callers should treat it as a client error rather than a rejection.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrNonPositiveIncome  = wrapInvalid("income must be greater than zero")
	ErrNegativeObligation = wrapInvalid("obligation cannot be negative")
	ErrNegativeAmount     = wrapInvalid("loan amount cannot be negative")
	ErrNonFinite          = wrapInvalid("value must be a finite number")
)

// Construction errors for catalogs and regulation sets
var (
	ErrDuplicateBank      = errors.New("duplicate bank in catalog")
	ErrInvalidPolicy      = errors.New("invalid bank policy")
	ErrInvalidRegulations = errors.New("invalid regulations")
)

type invalidInputError struct {
	msg string
}

func wrapInvalid(msg string) error {
	return &invalidInputError{msg: msg}
}

func (e *invalidInputError) Error() string {
	return e.msg
}

func (e *invalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
