package hackernews

import (
	"errors"
	"fmt"
)

// MissingFieldError reports a structural element the extractor depends on
// was absent from the document.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

// ParseFieldError reports an element that was present but whose content did
// not match the expected format.
type ParseFieldError struct {
	Field string
	Raw   string
}

func (e ParseFieldError) Error() string {
	return fmt.Sprintf("could not parse field %s from %q", e.Field, e.Raw)
}

// StatusError reports a non-2xx response from the site.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

var ErrLoginFailed = errors.New("failed to login to your account")

// ErrStructuralInconsistency is returned by strict-mode forest
// reconstruction when a comment's depth has no valid parent.
var ErrStructuralInconsistency = errors.New("comment depths do not form a valid thread structure")
