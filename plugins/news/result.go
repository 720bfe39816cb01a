package news

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is reported before any network call when no key is set.
var ErrMissingAPIKey = errors.New("news API key not configured")

// FailureKind classifies why a search failed
type FailureKind string

const (
	KindMissingKey   FailureKind = "missing_key"
	KindInvalidInput FailureKind = "invalid_input"
	KindTransport    FailureKind = "transport"
	KindStatus       FailureKind = "status"
	KindDecode       FailureKind = "decode"
)

// Failure is a typed search failure
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one get_news call
type Result struct {
	Topic    string
	Articles []Article
	Failure  *Failure
}

// NewResult builds a Result from the outcome of Client.Search.
func NewResult(topic string, articles []Article, err error) Result {
	if err == nil {
		return Result{Topic: topic, Articles: articles}
	}
	var f *Failure
	if !errors.As(err, &f) {
		f = &Failure{Kind: KindTransport, Err: err}
	}
	return Result{Topic: topic, Failure: f}
}

// String renders the result as the text handed to the model.
func (r Result) String() string {
	if r.Failure != nil {
		if r.Failure.Kind == KindMissingKey {
			return "Error: News API key not configured"
		}
		return fmt.Sprintf("Error getting news for %s: %s", r.Topic, r.Failure.Error())
	}
	if len(r.Articles) == 0 {
		return fmt.Sprintf("No news found for topic: %s", r.Topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Latest news about '%s':\n\n", r.Topic)
	for i, a := range r.Articles {
		description := "No description"
		if a.Description != nil {
			description = *a.Description
		}
		fmt.Fprintf(&b, "%d. %s\n   %s...\n   %s\n\n", i+1, a.Title, description, a.URL)
	}
	return b.String()
}
