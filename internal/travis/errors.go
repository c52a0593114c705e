package travis

import (
	"errors"
	"fmt"
)

// ErrWaitTimeout is returned by WaitForMatrix when the optional maximum wait
// elapses before the matrix settles.
var ErrWaitTimeout = errors.New("timed out waiting for matrix jobs")

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// SchemaError reports a build response that does not match the expected shape.
// Index is -1 when the problem is at the top level of the document.
type SchemaError struct {
	Index   int
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("build response: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("build response: matrix[%d].%s: %s", e.Index, e.Field, e.Message)
}
