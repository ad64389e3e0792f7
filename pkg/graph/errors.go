package graph

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a node lookup misses. In normal query flow
// every ID handed around comes from the store itself, so hitting this is a
// programmer error surfaced as an internal failure.
var ErrNotFound = errors.New("node not found")

// ErrAlreadyBuilt is returned when Build is called on a store that already
// holds a graph. Rebuilds are a deployment-time operation on a fresh store.
var ErrAlreadyBuilt = errors.New("graph already built")

// BuildError reports a malformed or incomplete violation record encountered
// during graph construction. Construction errors are fatal: the corpus must
// be fixed before the store can serve queries.
type BuildError struct {
	RecordID string
	Reason   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("graph build failed on record %q: %s", e.RecordID, e.Reason)
}

func buildErrorf(recordID, format string, args ...any) *BuildError {
	return &BuildError{RecordID: recordID, Reason: fmt.Sprintf(format, args...)}
}
