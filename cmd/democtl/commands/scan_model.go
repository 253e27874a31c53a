package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"funnelzip-demo/internal/demo/sequencer"
	"funnelzip-demo/internal/models"
)

const maxBarWidth = 60

type tickMsg time.Time

// scanModel renders the scanning step and drives a manual sequencer one
// percent per tick.
type scanModel struct {
	seq      *sequencer.Sequencer
	sample   models.ProductSample
	checks   []models.CheckDescriptor
	interval time.Duration
	bar      progress.Model
	state    sequencer.State

	cancelled bool
}

func newScanModel(seq *sequencer.Sequencer, sample models.ProductSample, checks []models.CheckDescriptor, interval time.Duration) scanModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = maxBarWidth
	return scanModel{
		seq:      seq,
		sample:   sample,
		checks:   checks,
		interval: interval,
		bar:      bar,
		state:    seq.Snapshot(),
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m scanModel) Init() tea.Cmd {
	return tick(m.interval)
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		if m.bar.Width > maxBarWidth {
			m.bar.Width = maxBarWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.seq.Restart()
			m.state = m.seq.Snapshot()
			return m, tea.Quit
		case "enter":
			if _, moved := m.seq.Advance(); moved {
				m.state = m.seq.Snapshot()
				return m, tea.Quit
			}
		}
		return m, nil

	case tickMsg:
		m.seq.Tick()
		m.state = m.seq.Snapshot()
		switch {
		case m.state.Step == models.StepResults:
			// auto-advance moved us on
			return m, tea.Quit
		case m.state.Progress.Complete:
			return m, nil
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m scanModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Step %d of 3: Scanning", models.StepScanning.Number())))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Analyzing " + m.sample.Title))
	b.WriteString("\n\n")

	p := m.state.Progress
	for i, c := range m.checks {
		switch {
		case p.Complete || i < p.CurrentCheckIndex:
			b.WriteString(doneStyle.Render("  ✓ " + c.Text))
		case i == p.CurrentCheckIndex:
			b.WriteString(activeStyle.Render("  › " + c.Text))
		default:
			b.WriteString(dimStyle.Render("    " + c.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(m.bar.ViewAs(float64(p.Percent) / 100))
	b.WriteString("\n\n")
	if p.Complete {
		b.WriteString(helpStyle.Render("Scan complete. Press Enter to view results, q to quit"))
	} else {
		b.WriteString(helpStyle.Render("q to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

// Cancelled reports whether the user quit before the results step.
func (m scanModel) Cancelled() bool { return m.cancelled }

// Step returns the sequencer step when the program ended.
func (m scanModel) Step() models.DemoStep { return m.state.Step }
