// Package queueurl extracts service desk and queue identifiers from
// Jira Service Management queue URLs such as
// https://example.atlassian.net/jira/servicedesk/projects/SD/queues/custom/42
package queueurl

import (
	"net/url"
	"strings"

	"github.com/h0rv/sdq/internal/domain"
)

const (
	projectsSegment = "projects"
	queuesSegment   = "queues"
	customSegment   = "custom"
)

// ParseError reports a queue URL that does not have the expected structure.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

// Parse resolves the project key and queue ID from a queue URL.
// Only the first "projects" and "queues" segments are considered.
// A "custom" segment directly after "queues" is skipped once.
func Parse(raw string) (domain.QueueReference, error) {
	u, err := parse(raw)
	if err != nil {
		return domain.QueueReference{}, err
	}

	// Split the escaped path so an encoded "/" stays inside its segment.
	parts := strings.Split(u.EscapedPath(), "/")

	projectIdx := indexOf(parts, projectsSegment)
	if projectIdx == -1 || projectIdx+1 >= len(parts) || parts[projectIdx+1] == "" {
		return domain.QueueReference{}, &ParseError{Msg: "cannot find project key"}
	}
	projectKey, err := unescape(parts[projectIdx+1])
	if err != nil {
		return domain.QueueReference{}, err
	}

	queuesIdx := indexOf(parts, queuesSegment)
	if queuesIdx == -1 || queuesIdx+1 >= len(parts) {
		return domain.QueueReference{}, &ParseError{Msg: "cannot find queue ID"}
	}

	idIdx := queuesIdx + 1
	next, err := unescape(parts[idIdx])
	if err != nil {
		return domain.QueueReference{}, err
	}
	if next == customSegment {
		idIdx++
	}
	if idIdx >= len(parts) || parts[idIdx] == "" {
		return domain.QueueReference{}, &ParseError{Msg: "queue ID not found"}
	}
	queueID, err := unescape(parts[idIdx])
	if err != nil {
		return domain.QueueReference{}, err
	}

	return domain.QueueReference{
		ServiceDeskID: projectKey,
		QueueID:       queueID,
	}, nil
}

// Site returns the scheme and host of a queue URL (e.g., "https://example.atlassian.net").
func Site(raw string) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host, nil
}

func parse(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ParseError{Msg: "malformed URL"}
	}
	return u, nil
}

func unescape(segment string) (string, error) {
	s, err := url.PathUnescape(segment)
	if err != nil {
		return "", &ParseError{Msg: "malformed URL"}
	}
	return s, nil
}

func indexOf(parts []string, segment string) int {
	for i, p := range parts {
		if p == segment {
			return i
		}
	}
	return -1
}
