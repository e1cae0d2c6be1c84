package app

import (
	"fmt"
	"io"
	"time"

	"docfixer/internal/core/errors"
	"docfixer/internal/shared/util"
)

// Report summarizes one run.
type Report struct {
	RunID         string
	Types         int
	Members       int
	Notifications int
	Events        int
	Saved         []string
	Skips         map[errors.ErrorCode]int
	// Undocumented lists types without corpus pages, filled only in probe mode.
	Undocumented []string
	Duration     time.Duration
}

func newReport(runID string) *Report {
	return &Report{RunID: runID, Skips: make(map[errors.ErrorCode]int)}
}

func (r *Report) skip(err error) {
	if err == nil {
		return
	}
	r.Skips[errors.CodeOf(err)]++
}

// Skipped is the total number of skipped steps.
func (r Report) Skipped() int {
	n := 0
	for _, c := range r.Skips {
		n += c
	}
	return n
}

func (r Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(format string, args ...interface{}) error {
		n, err := fmt.Fprintf(w, format, args...)
		total += int64(n)
		return err
	}

	if err := write("types: %d, members: %d, notifications: %d, events: %d, saved: %d, skipped: %d (%s)\n",
		r.Types, r.Members, r.Notifications, r.Events, len(r.Saved), r.Skipped(), r.Duration.Round(time.Millisecond)); err != nil {
		return total, err
	}

	for _, code := range util.SortedKeys(r.Skips) {
		if err := write("  %-24s %d\n", code, r.Skips[code]); err != nil {
			return total, err
		}
	}
	for _, name := range r.Undocumented {
		if err := write("  undocumented %s\n", name); err != nil {
			return total, err
		}
	}
	return total, nil
}
