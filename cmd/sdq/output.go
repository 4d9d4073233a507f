package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h0rv/sdq/internal/domain"
	"github.com/h0rv/sdq/internal/queue"
	"github.com/h0rv/sdq/internal/tui"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// writeResult prints the result in the requested format.
func writeResult(w io.Writer, result domain.Result, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, tui.RenderResult(result, 0))
		return err
	}
}

// readPayload reads a {"queueUrl": "..."} request from path, or from stdin when path is "-".
func readPayload(path string, stdin io.Reader) (queue.Request, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return queue.Request{}, fmt.Errorf("failed to open payload: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var req queue.Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return queue.Request{}, fmt.Errorf("failed to parse payload: %w", err)
	}
	req.QueueURL = strings.TrimSpace(req.QueueURL)
	return req, nil
}
