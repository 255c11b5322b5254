package globalmap

import "fmt"

// Upstream names used in UpstreamError.API
const (
	APIGlobal  = "GlobalAPI"
	APISchnose = "SchnoseAPI"
)

// UpstreamError is returned by Fetch when an upstream API call fails or
// returns data that cannot be aggregated.
type UpstreamError struct {
	API     string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.API, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstreamError(api string, err error) *UpstreamError {
	return &UpstreamError{
		API:     api,
		Message: err.Error(),
		Err:     err,
	}
}
