package domain

import "encoding/json"

// Result is the outcome of a single queue fetch.
// Exactly one of Queue or Failure is set.
type Result struct {
	Queue   *Queue
	Failure *Failure
}

// Succeeded wraps a queue into a successful Result.
// Nil IssueTypes or Columns are replaced with empty slices.
func Succeeded(q Queue) Result {
	if q.IssueTypes == nil {
		q.IssueTypes = []json.RawMessage{}
	}
	if q.Columns == nil {
		q.Columns = []json.RawMessage{}
	}
	return Result{Queue: &q}
}

// Failed builds a failed Result.
func Failed(kind ErrorKind, message, details string) Result {
	return Result{Failure: &Failure{Kind: kind, Message: message, Details: details}}
}

// OK reports whether the fetch produced a queue.
func (r Result) OK() bool {
	return r.Queue != nil
}

type successWire struct {
	Success       bool              `json:"success"`
	QueueName     string            `json:"queueName"`
	JQL           string            `json:"jql"`
	ServiceDeskID string            `json:"serviceDeskId"`
	QueueID       string            `json:"queueId"`
	IssueTypes    []json.RawMessage `json:"issueTypes"`
	Columns       []json.RawMessage `json:"columns"`
}

type failureWire struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MarshalJSON renders the flat wire shape:
// {"success":true,"queueName",...} or {"success":false,"error","details"}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Queue != nil {
		q := r.Queue
		issueTypes, columns := q.IssueTypes, q.Columns
		if issueTypes == nil {
			issueTypes = []json.RawMessage{}
		}
		if columns == nil {
			columns = []json.RawMessage{}
		}
		return json.Marshal(successWire{
			Success:       true,
			QueueName:     q.Name,
			JQL:           q.JQL,
			ServiceDeskID: q.ServiceDeskID,
			QueueID:       q.QueueID,
			IssueTypes:    issueTypes,
			Columns:       columns,
		})
	}

	var w failureWire
	if r.Failure != nil {
		w.Error = r.Failure.Message
		w.Details = r.Failure.Details
	}
	return json.Marshal(w)
}
