// Package store persists submissions.
//
// Every backend keeps insertion order and exposes the same two operations:
// ReadAll returns the whole collection (empty, not an error, before the first
// append) and Append adds one record at the end. Failures wrap
// sentinel.ErrUnavailable or sentinel.ErrInvalidState so the service can
// report them as persistence errors without knowing the backend.
package store

import (
	"intake/internal/submission"
)

func emptyCollection() []submission.Submission {
	return []submission.Submission{}
}
