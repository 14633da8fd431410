package dataset

import "errors"

// Error codes
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeNetworkError = "network_error"
	ErrCodeServerError  = "server_error"
)

var (
	// ErrMissingColumn indicates a required CSV column is absent
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset indicates the source contained no fight rows
	ErrEmptyDataset = errors.New("dataset contains no rows")
)

// SourceError represents errors from dataset source operations
type SourceError struct {
	Source  string // file path or URL
	Code    string // Error code (e.g., "not_found")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
