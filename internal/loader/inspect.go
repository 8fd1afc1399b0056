package loader

import (
	"context"
	"encoding/json"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// Candidate is the validation outcome for one element of a token source.
type Candidate struct {
	Index  int
	Name   string
	Tokens theme.Tokens
	Err    error
}

// Valid reports whether the candidate parsed.
func (c Candidate) Valid() bool {
	return c.Err == nil
}

// Inspect fetches source and validates every candidate without registering
// anything.
func (l *Loader) Inspect(ctx context.Context, source string) ([]Candidate, error) {
	doc, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	raw, err := candidates(source, doc)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(raw))
	for i, candidate := range raw {
		tokens, err := theme.Parse(candidate)
		out = append(out, Candidate{
			Index:  i,
			Name:   candidateName(candidate, tokens),
			Tokens: tokens,
			Err:    err,
		})
	}
	return out, nil
}

// candidateName reports the authored name even when validation failed.
func candidateName(raw json.RawMessage, tokens theme.Tokens) string {
	if tokens.Name != "" {
		return tokens.Name
	}
	var head struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return ""
	}
	return head.Name
}
