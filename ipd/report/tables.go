// Package report renders and persists the per-generation reports produced by
// an ipd.Simulation: a score chart for the console, colour-coded genome and
// interaction tables written to files, and a queryable report store.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/baldhumanity/ipd-go/ipd"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects how a table is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatHTML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt", "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "md"
	default:
		return "txt"
	}
}

// cellStyle pairs the spreadsheet colours of a symbol with a terminal approximation.
type cellStyle struct {
	bg, fg string
	ansi   text.Colors
}

var actionStyles = map[ipd.Action]cellStyle{
	ipd.Cooperate: {bg: "#05D107", ansi: text.Colors{text.BgGreen, text.FgBlack}},
	ipd.Defect:    {bg: "#FF6746", ansi: text.Colors{text.BgRed, text.FgBlack}},
}

var outcomeStyles = map[ipd.Outcome]cellStyle{
	ipd.MutualCooperate: {bg: "#F9E30F", ansi: text.Colors{text.BgYellow, text.FgBlack}},
	ipd.Sucker:          {bg: "#F9320F", fg: "#FFFFFF", ansi: text.Colors{text.BgRed, text.FgWhite}},
	ipd.Exploit:         {bg: "#0FBFF9", ansi: text.Colors{text.BgCyan, text.FgBlack}},
	ipd.MutualDefect:    {bg: "#000000", fg: "#FFFFFF", ansi: text.Colors{text.BgBlack, text.FgWhite}},
}

// Options controls table rendering.
type Options struct {
	Format Format
	Color  bool // colour-code cells; ignored for CSV and Markdown
}

func (o Options) paint(s string, style cellStyle) string {
	if !o.Color {
		return s
	}
	switch o.Format {
	case FormatText:
		return style.ansi.Sprint(s)
	case FormatHTML:
		css := "background-color:" + style.bg
		if style.fg != "" {
			css += ";color:" + style.fg
		}
		return `<span style="` + css + `">` + s + `</span>`
	default:
		return s
	}
}

func (o Options) render(t table.Writer) string {
	switch o.Format {
	case FormatCSV:
		return t.RenderCSV()
	case FormatHTML:
		if o.Color {
			t.Style().HTML.EscapeText = false
		}
		return t.RenderHTML()
	case FormatMarkdown:
		return t.RenderMarkdown()
	default:
		return t.Render()
	}
}

// GenomeTable renders every agent's strategy table: one row per context,
// one column per agent.
func GenomeTable(r *ipd.GenerationReport, opts Options) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Generation %d - Genomes", r.Generation))

	header := table.Row{"ID"}
	for _, g := range r.Genomes {
		header = append(header, g.AgentID)
	}
	t.AppendHeader(header)

	for _, c := range ipd.AllContexts() {
		row := table.Row{c.String()}
		for _, g := range r.Genomes {
			a := g.Genome.Action(c)
			row = append(row, opts.paint(a.String(), actionStyles[a]))
		}
		t.AppendRow(row)
		if c == ipd.ThirdMove {
			t.AppendSeparator()
		}
	}
	return opts.render(t)
}

// InteractionTable renders the outcome log of every ordered pair: one row
// per "<agent> vs <opponent>", one column per game.
func InteractionTable(r *ipd.GenerationReport, opts Options) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Generation %d - Interactions", r.Generation))

	games := r.Rounds
	for _, rec := range r.Interactions {
		if len(rec.Outcomes) > games {
			games = len(rec.Outcomes)
		}
	}
	header := table.Row{"Game"}
	for i := 0; i < games; i++ {
		header = append(header, i)
	}
	t.AppendHeader(header)

	for _, rec := range r.Interactions {
		row := table.Row{PairLabel(rec.AgentID, rec.OpponentID)}
		for _, o := range rec.Outcomes {
			row = append(row, opts.paint(o.String(), outcomeStyles[o]))
		}
		t.AppendRow(row)
	}
	return opts.render(t)
}

// PairLabel names an ordered pair the way the interaction table does.
func PairLabel(agentID, opponentID int) string {
	return strconv.Itoa(agentID) + " vs " + strconv.Itoa(opponentID)
}

// ScoreTable renders the scores with a horizontal bar per agent, the winner
// marked, and a footer with the winner label.
func ScoreTable(r *ipd.GenerationReport, opts Options, barWidth int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Generation %d - Agent Scores", r.Generation))
	t.AppendHeader(table.Row{"Agent", "Score", ""})

	maxScore := 0
	for _, s := range r.Scores {
		if s.Score > maxScore {
			maxScore = s.Score
		}
	}
	for _, s := range r.Scores {
		bar := scoreBar(s.Score, maxScore, barWidth)
		if s.AgentID == r.WinnerID {
			bar = opts.paint(bar, actionStyles[ipd.Cooperate])
		}
		t.AppendRow(table.Row{s.AgentID, s.Score, bar})
	}
	t.AppendFooter(table.Row{"Winner: " + strconv.Itoa(r.WinnerID), r.WinnerScore(), ""})
	return opts.render(t)
}

// SummaryTable renders the generation statistics.
func SummaryTable(r *ipd.GenerationReport, opts Options) string {
	s := r.Summary
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Generation %d - Summary", r.Generation))
	t.AppendHeader(table.Row{"", "MEAN", "MIN", "MEDIAN", "MAX", "STDDEV"})
	t.AppendRow(table.Row{
		"Score",
		fmt.Sprintf("%0.2f", s.MeanScore),
		fmt.Sprintf("%0.0f", s.MinScore),
		fmt.Sprintf("%0.1f", s.MedianScore),
		fmt.Sprintf("%0.0f", s.MaxScore),
		fmt.Sprintf("%0.2f", s.StdDevScore),
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Cooperation (moves)", fmt.Sprintf("%0.2f%%", s.MoveCooperation*100)})
	t.AppendRow(table.Row{"Cooperation (genes)", fmt.Sprintf("%0.2f%%", s.GenomeCooperation*100)})
	return opts.render(t)
}

func scoreBar(score, maxScore, width int) string {
	if maxScore <= 0 || width <= 0 || score <= 0 {
		return ""
	}
	n := score * width / maxScore
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
