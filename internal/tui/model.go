package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bucketcopy/internal/domain"
	"bucketcopy/internal/presentation"
)

// Phase represents the current state of the run as shown by the TUI
type Phase int

const (
	PhaseCopying Phase = iota
	PhaseDraining
	PhaseDone
)

const maxProblems = 5

// Messages for the TUI
type (
	RunStartedMsg struct {
		RunID  string
		Config domain.RunConfig
	}
	FileQueuedMsg struct {
		Queued int
	}
	FileDoneMsg struct {
		Outcome   domain.CopyOutcome
		Processed int
	}
	WalkFailedMsg struct {
		WalkError domain.WalkError
	}
	RunFinishedMsg struct {
		Report domain.Report
	}
	tickMsg time.Time
)

type Config struct {
	SourceDir string
	OutDir    string

	// Cancel is called when the user asks to stop the run.
	Cancel func()
}

type Model struct {
	config      Config
	Phase       Phase
	RunID       string
	Report      domain.Report
	spinner     spinner.Model
	progress    progress.Model
	queued      int
	processed   int
	copied      int
	skipped     int
	failed      int
	buckets     map[string]int
	problems    []string
	currentFile string
	Quitting    bool
	width       int
	height      int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseCopying,
		spinner:  s,
		progress: p,
		buckets:  map[string]int{},
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			switch m.Phase {
			case PhaseCopying:
				m.Phase = PhaseDraining
				if m.config.Cancel != nil {
					m.config.Cancel()
				}
			case PhaseDone:
				m.Quitting = true
				return m, tea.Quit
			}
			return m, nil
		case "enter":
			if m.Phase == PhaseDone {
				return m, tea.Quit
			}
		}

	case RunStartedMsg:
		m.RunID = msg.RunID
		return m, nil

	case FileQueuedMsg:
		m.queued = msg.Queued
		return m, nil

	case FileDoneMsg:
		m.processed = msg.Processed
		m.currentFile = msg.Outcome.Entry.Name
		switch msg.Outcome.Status {
		case domain.StatusSuccess:
			m.copied++
			m.buckets[msg.Outcome.Entry.Ext]++
		case domain.StatusSkipped:
			m.skipped++
			m.addProblem(presentation.ProblemMessage(msg.Outcome))
		default:
			m.failed++
			m.addProblem(presentation.ProblemMessage(msg.Outcome))
		}
		return m, nil

	case WalkFailedMsg:
		m.addProblem(presentation.WalkErrorMessage(msg.WalkError))
		return m, nil

	case RunFinishedMsg:
		m.Report = msg.Report
		m.Phase = PhaseDone
		return m, nil

	case spinner.TickMsg:
		if m.Phase != PhaseDone {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase != PhaseDone {
			return m, tea.Batch(m.progress.SetPercent(m.percent()), tickCmd())
		}
	}

	return m, nil
}

// addProblem keeps the most recent problems only.
func (m *Model) addProblem(line string) {
	m.problems = append(m.problems, line)
	if len(m.problems) > maxProblems {
		m.problems = append([]string(nil), m.problems[len(m.problems)-maxProblems:]...)
	}
}

func (m Model) percent() float64 {
	if m.queued == 0 {
		return 0
	}
	return float64(m.processed) / float64(m.queued)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseCopying, PhaseDraining:
		b.WriteString(m.renderProgress())
	case PhaseDone:
		b.WriteString(m.renderCompletion())
	}

	if len(m.problems) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderProblems())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("bucketcopy")+" "+pathStyle.Render("one directory per extension"),
		"",
		pathStyle.Render("from "+shortenPath(m.config.SourceDir)),
		pathStyle.Render("into "+shortenPath(m.config.OutDir)),
	)
}

func (m Model) renderProgress() string {
	var b strings.Builder

	label := "Copying..."
	if m.Phase == PhaseDraining {
		label = "Stopping, waiting for copies in flight..."
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), label))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(m.percent())))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		headerStyle.Render(fmt.Sprintf("%d/%d files", m.processed, m.queued)),
		pathStyle.Render(fmt.Sprintf("(%.0f%%)", m.percent()*100)),
	))
	b.WriteString(m.renderCounts())

	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  → %s\n", m.currentFile))
	}
	return b.String()
}

func (m Model) renderCounts() string {
	return fmt.Sprintf("\n  %s  %s\n  %s  %s\n  %s  %s\n",
		labelStyle.Render("Copied"), statusBadge(domain.StatusSuccess, m.copied),
		labelStyle.Render("Skipped"), statusBadge(domain.StatusSkipped, m.skipped),
		labelStyle.Render("Failed"), statusBadge(domain.StatusFailed, m.failed),
	)
}

func (m Model) renderCompletion() string {
	var b strings.Builder

	if m.Report.Cancelled {
		b.WriteString(phaseStyle.Foreground(caution).Render("Copy Cancelled"))
	} else {
		b.WriteString(phaseStyle.Foreground(good).Render("Copy Complete"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderCounts())

	buckets := m.Report.Buckets()
	largest := 0
	for _, bucket := range buckets {
		largest = max(largest, bucket.Files)
	}
	if len(buckets) > 0 {
		b.WriteString("\n")
		for _, bucket := range buckets {
			b.WriteString(fmt.Sprintf("  %s %s %d\n",
				bucketNameStyle.Render(presentation.BucketLabel(bucket.Name)),
				bucketBar(bucket.Files, largest),
				bucket.Files,
			))
		}
	}
	return b.String()
}

func (m Model) renderProblems() string {
	lines := make([]string, 0, len(m.problems))
	for _, p := range m.problems {
		lines = append(lines, problemStyle.Render(p))
	}
	return problemBoxStyle.Render(presentation.JoinLines(lines))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseCopying:
		help = "Press q or ctrl+c to stop after the current files"
	case PhaseDraining:
		help = "Finishing copies in flight... Please wait"
	case PhaseDone:
		help = "Press Enter to exit"
	}
	return helpStyle.Render(help)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
