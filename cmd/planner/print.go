package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/signalsfoundry/satlink-planner/model"
)

// printTimeline renders a computed timeline as a segment table followed
// by advisories and summary statistics.
func printTimeline(w io.Writer, mt *model.MissionTimeline) {
	if len(mt.Segments) == 0 {
		fmt.Fprintln(w, "empty timeline (no route samples or zero-duration leg)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tSTATUS\tX\tKA\tKU")
	for _, seg := range mt.Segments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			seg.StartTime.UTC().Format(time.RFC3339),
			seg.EndTime.UTC().Format(time.RFC3339),
			seg.Status,
			stateMark(seg.XState),
			stateMark(seg.KaState),
			stateMark(seg.KuState),
		)
	}
	tw.Flush()

	if len(mt.Advisories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Advisories:")
		for _, adv := range mt.Advisories {
			fmt.Fprintf(w, "  %s [%s] %s\n",
				adv.Timestamp.UTC().Format(time.RFC3339), adv.Severity, adv.Message)
		}
	}

	if len(mt.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Configuration warnings:")
		for _, warning := range mt.Warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}

	fmt.Fprintln(w)
	if mt.Summary.NextConflict.IsZero() {
		fmt.Fprintln(w, "Next conflict: none")
	} else {
		fmt.Fprintf(w, "Next conflict: %s\n", mt.Summary.NextConflict.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Degraded total: %s, Critical total: %s\n",
		mt.Summary.DegradedTotal, mt.Summary.CriticalTotal)
	for _, tr := range model.AllTransports() {
		fmt.Fprintf(w, "%s unavailable: %s\n", tr, mt.Summary.UnavailableByTransport[tr])
	}
}

func stateMark(st model.TransportState) string {
	if st.Available {
		return "up"
	}
	return fmt.Sprintf("DOWN(%s)", st.Reason)
}
