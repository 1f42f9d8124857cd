package httperr

import "errors"

// BusinessError is an expected failure the API reports by Code.
// Cause, when set, is for logs only.
type BusinessError struct {
	Code  string
	Cause error
}

func (e BusinessError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Cause.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Cause
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// WithCause reports code to the client and keeps cause for diagnostics.
func WithCause(code string, cause error) error {
	return BusinessError{Code: code, Cause: cause}
}

// CodeOf returns the business code carried by err, if any.
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

func IsBusiness(err error, code string) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}
