package booking

// Validation error codes.
const (
	CodeDurationMissing     = "durationMissing"
	CodeDurationNonPositive = "durationNonPositive"
	CodeWindowWrongDuration = "windowWrongDuration"
	CodeWindowMisaligned    = "windowMisaligned"
	CodeWindowOutOfHours    = "windowOutOfHours"
	CodeInvalidRange        = "invalidRange"
	CodeOverlap             = "overlap"
	CodeUnknownContact      = "unknownContact"
)

// ValidationError is a booking-policy violation surfaced to callers as a
// 4xx response. Message is the human-readable text shown to the client.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code, msg string) error {
	return &ValidationError{
		Code:    code,
		Message: msg,
	}
}
