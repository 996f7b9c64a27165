package report

import (
	"fmt"
	"strings"

	"fastbreak/internal/domain/types"
)

// FormatSlack renders the report as Slack mrkdwn: team totals,
// underperformers, waiver targets, the single suggested move, then
// data-quality warnings.
func FormatSlack(r *Report) string {
	var lines []string
	lines = append(lines, ":basketball: *Fantasy NBA Daily Update*", "")

	lines = append(lines, "*Projected team totals (using projections):*")
	parts := make([]string, len(r.TeamTotals))
	for i, t := range r.TeamTotals {
		parts[i] = fmt.Sprintf("%s: %.1f", t.Category, t.Total)
	}
	lines = append(lines, strings.Join(parts, " | "), "")

	lines = append(lines, "*Underperformers (lowest projected z-scores on your roster):*")
	if len(r.Underperformers) == 0 {
		lines = append(lines, "- None identified (roster empty)")
	}
	for _, e := range r.Underperformers {
		lines = append(lines, formatEntry(e))
	}
	lines = append(lines, "")

	lines = append(lines, "*Top waiver targets (by aggregate projection z-score):*")
	if len(r.TopTargets) == 0 {
		lines = append(lines, "- No waiver data available")
	}
	for _, e := range r.TopTargets {
		lines = append(lines, formatEntry(e))
	}
	lines = append(lines, "")

	lines = append(lines, "*Suggested Add / Drop:*")
	if s := r.Suggestion; s != nil {
		lines = append(lines, fmt.Sprintf("> *Add:* %s (z=%.2f)", s.Add, s.AddScore))
		if s.DropScore != nil {
			lines = append(lines, fmt.Sprintf("> *Drop:* %s (z=%.2f)", s.Drop, *s.DropScore))
		} else {
			lines = append(lines, fmt.Sprintf("> *Drop:* %s (no projection data)", s.Drop))
		}
		if s.Gain != nil {
			lines = append(lines, fmt.Sprintf("> *Projected z gain:* %.2f", *s.Gain))
		}
		lines = append(lines, "",
			"_Reasoning:_ Replace your weakest projected contributor with the highest available projected contributor. This is a projection-driven signal; consider injuries or minutes before acting.")
	} else {
		lines = append(lines, "- No positive add/drop identified (no waiver players beat roster players by projections).")
	}
	lines = append(lines, "")

	if len(r.Warnings) > 0 {
		lines = append(lines, "*Data quality warnings:*")
		for _, w := range r.Warnings {
			lines = append(lines, "- "+w)
		}
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("_Data: projections rows=%d_", r.ProjectionCount))
	return strings.Join(lines, "\n")
}

func formatEntry(e types.Entry) string {
	if !e.Scored {
		return fmt.Sprintf("- %s: no projection data", e.Player)
	}
	return fmt.Sprintf("- %s: z_total = %.2f", e.Player, e.Score)
}
