package wiki

import (
	"errors"
	"fmt"
)

// ErrPageNotFound is returned when the API answers with the "-1" page id,
// or when the requested field is missing from an existing page.
var ErrPageNotFound = errors.New("page not found")

// DisambiguationNotFoundError reports that no usable disambiguation page
// exists for Title. It matches ErrPageNotFound with errors.Is.
type DisambiguationNotFoundError struct {
	Title string
}

func (e *DisambiguationNotFoundError) Error() string {
	return fmt.Sprintf("no disambiguation page found for %q", e.Title)
}

// Is makes a DisambiguationNotFoundError a specialization of ErrPageNotFound.
func (e *DisambiguationNotFoundError) Is(target error) bool {
	return target == ErrPageNotFound
}

// IndexOutOfRangeError reports a 1-based disambiguation selector outside [1, Len].
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("disambiguation index %d out of range (1-%d)", e.Index, e.Len)
}

// APIError is an error object returned in the body of an API response.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}
