// Package domain defines the normalized domain types for Jira Service Management queues.
// These types represent the core concepts independent of the Service Desk REST API structure.
package domain

import "encoding/json"

// QueueReference identifies a queue inside a service desk.
// Both fields are non-empty when produced by the URL parser.
type QueueReference struct {
	ServiceDeskID string // Service desk project key (e.g., "SD")
	QueueID       string // Queue ID within the service desk (e.g., "42")
}

// Queue is a saved, named ticket filter fetched from a service desk.
type Queue struct {
	Name          string            // Queue display name
	JQL           string            // Filter query backing the queue
	ServiceDeskID string            // Project key the queue was resolved from
	QueueID       string            // Queue ID the queue was resolved from
	IssueTypes    []json.RawMessage // Issue types as returned upstream, never nil
	Columns       []json.RawMessage // Column definitions as returned upstream, never nil
}

// ErrorKind classifies why a fetch failed.
type ErrorKind string

// ErrorKind constants for fetch failures.
const (
	ErrorKindInputMissing  ErrorKind = "InputMissing"
	ErrorKindParseError    ErrorKind = "ParseError"
	ErrorKindUpstreamError ErrorKind = "UpstreamError"
	ErrorKindDecodeError   ErrorKind = "DecodeError"
	ErrorKindUnknownError  ErrorKind = "UnknownError"
)

// AccessHint is the remediation text attached to transport and decode failures.
const AccessHint = "Make sure the queue URL is valid and you have access to the service desk project"

// Failure describes a fetch that did not produce a queue.
type Failure struct {
	Kind    ErrorKind // Failure classification (not serialized)
	Message string    // Human-readable error
	Details string    // Optional remediation hint
}
