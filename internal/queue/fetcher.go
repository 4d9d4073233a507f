// Package queue resolves a service desk queue URL into the queue's JQL filter.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/h0rv/sdq/internal/domain"
	"github.com/h0rv/sdq/internal/jira"
	"github.com/h0rv/sdq/internal/queueurl"
	"go.uber.org/zap"
)

// Request is the input payload of a fetch.
type Request struct {
	QueueURL string `json:"queueUrl"`
}

// queueResponse is the relevant subset of the Service Desk queue resource.
type queueResponse struct {
	Name       string            `json:"name"`
	JQL        string            `json:"jql"`
	IssueTypes []json.RawMessage `json:"issueTypes"`
	Columns    []json.RawMessage `json:"columns"`
}

// Fetcher looks up a single queue through a Jira transport.
type Fetcher struct {
	transport jira.Transport
	logger    *zap.Logger
}

// NewFetcher creates a Fetcher. A nil logger disables logging.
// A nil transport is allowed: URLs that fail validation never reach it,
// and a valid URL then yields an UnknownError failure.
func NewFetcher(transport jira.Transport, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{transport: transport, logger: logger}
}

// Path returns the Service Desk API path for a queue.
func Path(ref domain.QueueReference) string {
	return fmt.Sprintf("/rest/servicedeskapi/servicedesk/%s/queue/%s",
		url.PathEscape(ref.ServiceDeskID), url.PathEscape(ref.QueueID))
}

// Fetch parses req.QueueURL and retrieves the queue it points to.
// It performs at most one request and never returns an error: every
// failure is reported through the Result.
func (f *Fetcher) Fetch(ctx context.Context, req Request) domain.Result {
	if strings.TrimSpace(req.QueueURL) == "" {
		return domain.Failed(domain.ErrorKindInputMissing, "Queue URL is required", "")
	}

	ref, err := queueurl.Parse(req.QueueURL)
	if err != nil {
		f.logger.Info("invalid queue URL", zap.String("queue_url", req.QueueURL), zap.Error(err))
		return domain.Failed(domain.ErrorKindParseError, "Failed to parse queue URL: "+err.Error(), "")
	}

	log := f.logger.With(
		zap.String("service_desk_id", ref.ServiceDeskID),
		zap.String("queue_id", ref.QueueID),
	)
	log.Debug("fetching queue")

	if f.transport == nil {
		log.Error("no transport configured")
		return domain.Failed(domain.ErrorKindUnknownError, "no Jira transport configured", domain.AccessHint)
	}

	header := http.Header{}
	header.Set("Accept", "application/json")

	resp, err := f.transport.Get(ctx, Path(ref), header)
	if err != nil {
		log.Error("queue request failed", zap.Error(err))
		return domain.Failed(domain.ErrorKindUnknownError, err.Error(), domain.AccessHint)
	}

	if !resp.OK() {
		log.Warn("queue request returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Text()),
		)
		return domain.Failed(domain.ErrorKindUpstreamError,
			fmt.Sprintf("Failed to fetch queue data: %d %s", resp.StatusCode, resp.StatusText), "")
	}

	var body *queueResponse
	if err := resp.DecodeJSON(&body); err != nil {
		log.Error("failed to decode queue response", zap.Error(err))
		return domain.Failed(decodeKind(err), err.Error(), domain.AccessHint)
	}
	if body == nil {
		log.Error("queue response is null")
		return domain.Failed(domain.ErrorKindDecodeError, "queue response is not a JSON object", domain.AccessHint)
	}

	log.Debug("queue fetched", zap.String("name", body.Name))

	return domain.Succeeded(domain.Queue{
		Name:          body.Name,
		JQL:           body.JQL,
		ServiceDeskID: ref.ServiceDeskID,
		QueueID:       ref.QueueID,
		IssueTypes:    body.IssueTypes,
		Columns:       body.Columns,
	})
}

func decodeKind(err error) domain.ErrorKind {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return domain.ErrorKindDecodeError
	}
	return domain.ErrorKindUnknownError
}
