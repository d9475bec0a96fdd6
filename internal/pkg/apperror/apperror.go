package apperror

// AppError carries an HTTP status code alongside a user-facing message.
// Domain packages declare their failure modes as sentinel *AppError values
// so that handlers can map them to responses without switch tables.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404, 409)
	Message string // Safe to show to the client
	Err     error  // Underlying cause, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError that carries an underlying error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
