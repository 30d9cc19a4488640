package fswalk

import (
	"context"

	"fexplorer/internal/entry"
)

// Collect runs a walk to completion and returns every entry and
// diagnostic. Convenience for callers that do not need streaming, such
// as the project index sync and tests.
func Collect(ctx context.Context, cfg Config) ([]entry.Entry, []Diagnostic, error) {
	w := New(cfg)
	entries, diags := w.Start(ctx)

	var out []entry.Entry
	var sideband []Diagnostic
	for entries != nil || diags != nil {
		select {
		case e, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			out = append(out, e)
		case d, ok := <-diags:
			if !ok {
				diags = nil
				continue
			}
			sideband = append(sideband, d)
		}
	}
	return out, sideband, w.Err()
}
