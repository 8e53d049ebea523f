package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/reducebench/internal/cli"
	"github.com/agbru/reducebench/internal/harness"
	"github.com/agbru/reducebench/internal/orchestration"
	"github.com/agbru/reducebench/internal/reduce"
	"github.com/agbru/reducebench/internal/ui"
)

var columnWidths = []int{12, 10, 8, 11, 20, 18, 10}

// RunsModel is the table of combinations, one row per run in sweep order.
type RunsModel struct {
	table table.Model
	rows  []table.Row
}

// NewRunsModel creates an empty runs table.
func NewRunsModel() RunsModel {
	cols := make([]table.Column, len(cli.Columns))
	for i, title := range cli.Columns {
		cols[i] = table.Column{Title: title, Width: columnWidths[i]}
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(8))

	p := ui.CurrentPalette()
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(p.Accent).BorderForeground(p.Border)
	styles.Selected = styles.Selected.Foreground(p.Text).Background(p.Border)
	t.SetStyles(styles)
	return RunsModel{table: t}
}

// SetSize updates the table dimensions.
func (r *RunsModel) SetSize(w, h int) {
	r.table.SetWidth(w)
	r.table.SetHeight(max(h, 3))
}

// Started adds or resets the row of combination index.
func (r *RunsModel) Started(index int, s reduce.Strategy, b harness.Backend) {
	r.set(index, table.Row{s.String(), b.String(), "", "", "", "", "running"})
}

// Finished fills the row of combination index from its record.
func (r *RunsModel) Finished(index int, rec orchestration.BenchmarkRecord) {
	r.set(index, cli.RecordRow(rec))
}

// Complete replaces every row with the judged records of the report.
func (r *RunsModel) Complete(report *orchestration.Report) {
	for i, rec := range report.Records {
		r.set(i, cli.RecordRow(rec))
	}
}

// Rows returns the current rows.
func (r RunsModel) Rows() []table.Row { return r.rows }

func (r *RunsModel) set(index int, row table.Row) {
	for len(r.rows) <= index {
		r.rows = append(r.rows, make(table.Row, len(cli.Columns)))
	}
	r.rows[index] = row
	r.table.SetRows(r.rows)
}

// Update forwards navigation keys to the table.
func (r RunsModel) Update(msg tea.Msg) (RunsModel, tea.Cmd) {
	var cmd tea.Cmd
	r.table, cmd = r.table.Update(msg)
	return r, cmd
}

// View renders the table inside a panel.
func (r RunsModel) View() string {
	return panelStyle.Render(r.table.View())
}
