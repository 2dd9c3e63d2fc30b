package regexboard

import "github.com/kailas-cloud/regexboard/internal/domain"

// InvalidPatternMessage is the error text of every rejected pattern.
const InvalidPatternMessage = domain.InvalidPatternMessage

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrInvalidPattern = domain.ErrInvalidPattern
	ErrInvalidMode    = domain.ErrInvalidMode
	ErrCorruptState   = domain.ErrCorruptState
)

// PatternValidationError carries the rejected input. Its Error text is
// always InvalidPatternMessage; Detail has the engine's reason.
type PatternValidationError = domain.PatternValidationError
