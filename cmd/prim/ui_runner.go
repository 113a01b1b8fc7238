package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"prim/internal/driver"
	"prim/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFormatWithUI runs FormatPaths in the background and renders its
// progress events until the run finishes.
func runFormatWithUI(ctx context.Context, out io.Writer, title string, files []string, req driver.FormatRequest) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Paths = files
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, reqCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the program may quit early (ctrl+c); drain so the producer can finish
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
