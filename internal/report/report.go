// Package report renders run results as styled terminal text.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/episim/internal/agent"
	"github.com/san-kum/episim/internal/automation"
	"github.com/san-kum/episim/internal/scenario"
	"github.com/san-kum/episim/internal/sim"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle
			}
			return CellStyle
		})
}

func label(name string, value string) string {
	return MetricLabel.Render(name+":") + " " + MetricValue.Render(value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Census renders counts as a single coloured line.
func Census(c sim.Counts) string {
	parts := []string{
		Susceptible.Render(fmt.Sprintf("S %d", c.Susceptible)),
		Infected.Render(fmt.Sprintf("I %d", c.Infected)),
		Recovered.Render(fmt.Sprintf("R %d", c.Recovered)),
	}
	if c.Quarantined > 0 {
		parts = append(parts, Quarantined.Render(fmt.Sprintf("Q %d", c.Quarantined)))
	}
	return strings.Join(parts, "  ")
}

// Progress is the periodic line printed while a run is in flight.
func Progress(s sim.Snapshot) string {
	return fmt.Sprintf("%s  %s", Subtle.Render(fmt.Sprintf("tick %6d  t=%.4f", s.Tick, s.Time)), Census(s.Counts))
}

func groupsTable(groups []scenario.Group) string {
	t := newTable("group", "susceptible", "infected", "recovered", "total")
	for _, g := range groups {
		t.Row(g.Name, countCell(g.Counts.Susceptible), countCell(g.Counts.Infected),
			countCell(g.Counts.Recovered), countCell(g.Counts.Total()))
	}
	return t.Render()
}

func countCell(n int) string { return strconv.Itoa(n) }

// Summary renders the final panel of a run.
func Summary(name string, res *sim.Result, groups []scenario.Group, elapsed time.Duration) string {
	var b strings.Builder

	b.WriteString(Title.Render(name))
	b.WriteString("\n\n")
	b.WriteString(label("steps", strconv.Itoa(res.StepsTaken)))
	b.WriteString("\n")
	b.WriteString(label("elapsed", elapsed.Round(time.Millisecond).String()))
	b.WriteString("\n")
	b.WriteString(label("final", "") + Census(res.Final))
	b.WriteString("\n")

	if len(res.Metrics) > 0 {
		b.WriteString("\n")
		names := make([]string, 0, len(res.Metrics))
		for n := range res.Metrics {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			b.WriteString(label(n, formatFloat(res.Metrics[n])))
			b.WriteString("\n")
		}
	}

	if len(groups) > 1 {
		b.WriteString("\n")
		b.WriteString(groupsTable(groups))
		b.WriteString("\n")
	}

	for _, err := range res.Errors {
		b.WriteString(Infected.Render("error: " + err.Error()))
		b.WriteString("\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// SweepTable renders sweep results, one row per parameter value.
func SweepTable(param string, results []automation.SweepResult) string {
	t := newTable(param, "peak infected", "attack rate", "final")
	for _, r := range results {
		t.Row(formatFloat(r.Value), formatFloat(r.PeakInfected), formatFloat(r.AttackRate), plainCensus(r.Final))
	}
	return t.Render()
}

// BatchTable renders the summaries of a batch.
func BatchTable(summaries []automation.Summary) string {
	t := newTable("run", "scenario", "seed", "steps", "peak infected", "attack rate", "final")
	for _, s := range summaries {
		t.Row(s.Name, s.Scenario, strconv.FormatInt(s.Seed, 10), strconv.Itoa(s.Steps),
			formatFloat(s.PeakInfected), formatFloat(s.AttackRate), plainCensus(s.Final))
	}
	return t.Render()
}

// EnsembleTable renders per-metric statistics across runs.
func EnsembleTable(stats []automation.EnsembleStats) string {
	t := newTable("metric", "runs", "mean", "stddev", "min", "max")
	for _, s := range stats {
		t.Row(s.Metric, strconv.Itoa(s.Runs), formatFloat(s.Mean), formatFloat(s.StdDev),
			formatFloat(s.Min), formatFloat(s.Max))
	}
	return t.Render()
}

func plainCensus(c sim.Counts) string {
	s := fmt.Sprintf("%d/%d/%d", c.Susceptible, c.Infected, c.Recovered)
	if c.Quarantined > 0 {
		s += fmt.Sprintf(" +%dq", c.Quarantined)
	}
	return s
}

// Legend explains the census abbreviations.
func Legend() string {
	return Subtle.Render(fmt.Sprintf("S/I/R = %s/%s/%s", agent.Susceptible, agent.Infected, agent.Recovered))
}
