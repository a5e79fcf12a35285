package catalog

import "fmt"

// BrokenReferenceError reports a node whose detail key has no record.
// NewDiagram rejects such catalogs, so seeing this at resolve time means
// the catalogs were built inconsistently.
type BrokenReferenceError struct {
	Diagram   string
	Index     int
	DetailKey string
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("diagram %q: node %d references missing detail %q", e.Diagram, e.Index, e.DetailKey)
}

// InvalidIndexError reports an index outside the node catalog.
type InvalidIndexError struct {
	Diagram string
	Index   int
	Len     int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("diagram %q: node index %d not in catalog (%d nodes)", e.Diagram, e.Index, e.Len)
}

// DuplicateIndexError reports two nodes sharing an index.
type DuplicateIndexError struct {
	Diagram string
	Index   int
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("diagram %q: duplicate node index %d", e.Diagram, e.Index)
}

// DuplicateKeyError reports two records (or list entries) sharing a key.
type DuplicateKeyError struct {
	Scope string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key %q", e.Scope, e.Key)
}
