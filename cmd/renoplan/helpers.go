package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// newTabWriter returns a tabwriter configured for CLI table output.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatMoney renders an amount for table output.
func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// formatDay renders a date, "-" when unset.
func formatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// formatDayPtr renders an optional date.
func formatDayPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDay(*t)
}
