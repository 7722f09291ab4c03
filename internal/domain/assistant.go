package domain

import (
	"encoding/json"
	"fmt"
)

// Identity is the caller identity attached to an assistant request. It is
// either Anonymous or KnownIdentity.
type Identity interface {
	isIdentity()
}

// Anonymous is a caller that supplied neither email nor username.
type Anonymous struct{}

// KnownIdentity is a caller that supplied an email, a username, or both.
type KnownIdentity struct {
	Email    string
	Username string
}

func (Anonymous) isIdentity()     {}
func (KnownIdentity) isIdentity() {}

// NewIdentity returns Anonymous when both values are empty.
func NewIdentity(email, username string) Identity {
	if email == "" && username == "" {
		return Anonymous{}
	}
	return KnownIdentity{Email: email, Username: username}
}

// IdentityFilter matches rows whose email OR username equals the given
// values. An absent value is matched as the empty string.
type IdentityFilter struct {
	Email    string
	Username string
}

// DatasetQuery is one independent read against the record store.
type DatasetQuery struct {
	Name        DatasetName
	Filter      IdentityFilter
	Limit       int
	Conditional bool
}

// Record is one row of a dataset, keyed by column name.
type Record map[string]any

// DatasetResult is the outcome of a single dataset query.
type DatasetResult struct {
	Name DatasetName
	Rows []Record
}

// AggregatedContext maps every dataset to its rows. Use
// NewAggregatedContext so that all four keys are present.
type AggregatedContext map[DatasetName][]Record

// NewAggregatedContext returns a context with every dataset set to an empty
// sequence.
func NewAggregatedContext() AggregatedContext {
	agg := make(AggregatedContext, len(DatasetNames))
	for _, name := range DatasetNames {
		agg[name] = []Record{}
	}
	return agg
}

// Set stores rows for a dataset, normalizing nil to an empty sequence.
func (a AggregatedContext) Set(name DatasetName, rows []Record) {
	if rows == nil {
		rows = []Record{}
	}
	a[name] = rows
}

// Counts returns the number of rows held per dataset.
func (a AggregatedContext) Counts() map[DatasetName]int {
	counts := make(map[DatasetName]int, len(a))
	for name, rows := range a {
		counts[name] = len(rows)
	}
	return counts
}

// UpstreamRequest is the payload sent to the inference service.
type UpstreamRequest struct {
	UserInput  string            `json:"userInput"`
	UserEmail  string            `json:"userEmail"`
	UserName   string            `json:"userName"`
	Context    json.RawMessage   `json:"context,omitempty"`
	PromptType string            `json:"promptType"`
	DBData     AggregatedContext `json:"dbData"`
}

// UpstreamResponse is the parsed reply of the inference service.
type UpstreamResponse struct {
	Reply   string
	Actions []json.RawMessage
}

// GatewayError is a classified assistant failure. Message is safe to show
// to callers; Detail carries diagnostic text.
type GatewayError struct {
	Kind    ErrorKind
	Message string
	Detail  string
	Err     error
}

// NewGatewayError creates a GatewayError whose detail is taken from err.
func NewGatewayError(kind ErrorKind, message string, err error) *GatewayError {
	ge := &GatewayError{Kind: kind, Message: message, Err: err}
	if err != nil {
		ge.Detail = err.Error()
	}
	return ge
}

func (e *GatewayError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// DatasetError reports which dataset query failed.
type DatasetError struct {
	Dataset DatasetName
	Err     error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Dataset, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}
