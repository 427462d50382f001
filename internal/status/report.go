package status

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText renders a report as an aligned table for terminal output.
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVICE\tSTATE\tDETAIL")
	for _, s := range r.Services {
		detail := s.Detail
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Service, s.State, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d configured, %d not configured, %d errors\n",
		r.Configured, r.NotConfigured, r.Errors)

	fmt.Fprintln(w, "\nRate limits:")
	for _, s := range r.Services {
		fmt.Fprintf(w, "  %s: %s\n", s.Service, s.RateLimits)
	}
	return nil
}
