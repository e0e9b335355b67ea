package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agenthands/followgraph/internal/core/analysis"
	"github.com/agenthands/followgraph/internal/core/model"
)

// WriteText prints the human-readable report.
func WriteText(w io.Writer, in Inputs) error {
	k := in.ConsoleTopK
	if k <= 0 {
		k = 5
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Friends per candidate:")
	for _, row := range analysis.FriendCounts(in.Friends) {
		fmt.Fprintf(tw, "  %s\t%d\n", row.ID, row.Count)
	}

	fmt.Fprintf(tw, "\nTop %d most followed accounts:\n", k)
	writeRows(tw, analysis.TopK(analysis.Frequency(in.Friends), k))

	cohorts := cohortsOf(in)
	for _, c := range cohorts {
		freq := analysis.CohortFrequency(in.Friends, in.Roster.Set(c.Label))
		fmt.Fprintf(tw, "\nTop %d most followed by %s:\n", k, c.Plural)
		writeRows(tw, analysis.TopK(freq, k))
	}

	for _, a := range cohorts {
		for _, b := range cohorts {
			if a.Label == b.Label {
				continue
			}
			rows, err := analysis.CrossCohortCount(in.Roster.Members(a.Label), in.Roster.Set(b.Label), in.Friends)
			if err != nil {
				return fmt.Errorf("failed to count %s following %s: %w", a.Plural, b.Plural, err)
			}
			fmt.Fprintf(tw, "\n%s following %s:\n", title(a.Plural), b.Plural)
			writeRows(tw, rows)
		}
	}

	if in.BridgeFrom != "" && in.BridgeTo != "" {
		freqTo := analysis.CohortFrequency(in.Friends, in.Roster.Set(in.BridgeTo))
		scores, err := analysis.BridgeScores(in.Roster.Members(in.BridgeFrom), freqTo, in.Friends)
		if err != nil {
			return fmt.Errorf("failed to compute bridge scores: %w", err)
		}
		fmt.Fprintf(tw, "\n%s scores:\n", title(nameOf(in, in.BridgeFrom)))
		writeRows(tw, analysis.SortByCount(scores))
	}

	if in.Graph != nil {
		fmt.Fprintf(tw, "\ngraph has %d nodes and %d edges\n", in.Graph.NumNodes(), in.Graph.NumEdges())
	}

	if len(in.Communities) > 0 {
		fmt.Fprintf(tw, "\n%d communities:\n", len(in.Communities))
		for i, members := range in.Communities {
			fmt.Fprintf(tw, "  %d\t%s\n", i+1, strings.Join(members, ", "))
		}
	}

	return tw.Flush()
}

func writeRows(w io.Writer, rows []model.EntityCount) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s\t%d\n", row.ID, row.Count)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
