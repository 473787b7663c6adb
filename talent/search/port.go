package search

import "context"

// ModelRequirementParser extracts structured requirements from a query
// using an external language model. Implementations must return
// concrete technology tokens only; the extractor validates the payload
// and discards it entirely on any violation.
type ModelRequirementParser interface {
	ParseQuery(ctx context.Context, query string) (*Requirements, error)
}
