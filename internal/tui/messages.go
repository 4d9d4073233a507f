// Package tui provides the Bubble Tea model for the interactive queue view.
package tui

import "github.com/h0rv/sdq/internal/domain"

// FetchDoneMsg is emitted when the queue fetch completes.
type FetchDoneMsg struct {
	Result domain.Result
}

// browserOpenedMsg reports the outcome of opening the queue URL.
type browserOpenedMsg struct {
	err error
}
