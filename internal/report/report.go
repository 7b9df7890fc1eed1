// Package report renders a pipeline report for the console. It is a thin
// presentation layer; all figures come from the structured Report value.
package report

import (
	"fmt"
	"io"

	"github.com/crimson-sun/restat/internal/pipeline"
)

// Render writes the human-readable run summary to w.
func Render(w io.Writer, r pipeline.Report) {
	fmt.Fprintf(w, "Processed %d of %d input file(s).\n", r.Processed(), len(r.Files))
	for _, f := range r.Files {
		if f.Skipped {
			fmt.Fprintf(w, "  skipped %s (%s)\n", f.Path, f.Reason)
		}
	}
	fmt.Fprintf(w, "Scanned %d record(s), kept %d.\n", r.Scanned, r.Kept)

	if len(r.Ignored) > 0 {
		fmt.Fprintf(w, "\n%d channel(s) were ignored (not on the allow-list):\n", len(r.Ignored))
		for _, id := range r.Ignored {
			fmt.Fprintf(w, "- %s\n", id)
		}
	} else {
		fmt.Fprintln(w, "\nAll channels seen are on the allow-list; nothing was ignored.")
	}

	fmt.Fprintln(w)
	for _, o := range r.Outputs {
		fmt.Fprintf(w, "Wrote %s: %d record(s)\n", o.Destination, o.Records)
	}
	fmt.Fprintln(w, "\nConversion complete.")
}
