package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bucketcopy/internal/domain"
)

const bucketBarWidth = 24

var (
	accent  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#7AA2F7"}
	faint   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	good    = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#85DCB0"}
	caution = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F6AE2D"}
	broken  = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#E85D75"}

	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	pathStyle       = lipgloss.NewStyle().Foreground(faint)
	phaseStyle      = lipgloss.NewStyle().Bold(true).MarginTop(1)
	labelStyle      = lipgloss.NewStyle().Foreground(faint).Width(10)
	bucketNameStyle = lipgloss.NewStyle().Foreground(accent).Width(16)
	bucketBarStyle  = lipgloss.NewStyle().Foreground(accent)
	problemStyle    = lipgloss.NewStyle().Foreground(caution)
	problemBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(caution).
			Padding(0, 1).
			MarginTop(1)
	helpStyle = lipgloss.NewStyle().Foreground(faint).Italic(true).MarginTop(1)
)

var statusStyles = map[domain.Status]lipgloss.Style{
	domain.StatusSuccess: lipgloss.NewStyle().Foreground(good).Bold(true),
	domain.StatusSkipped: lipgloss.NewStyle().Foreground(caution),
	domain.StatusFailed:  lipgloss.NewStyle().Foreground(broken).Bold(true),
}

var statusIcons = map[domain.Status]string{
	domain.StatusSuccess: "✓",
	domain.StatusSkipped: "○",
	domain.StatusFailed:  "✗",
}

func statusBadge(status domain.Status, n int) string {
	return statusStyles[status].Render(fmt.Sprintf("%s %d", statusIcons[status], n))
}

// bucketBar draws a bucket's file count scaled against the largest bucket.
func bucketBar(files, largest int) string {
	if largest <= 0 || files <= 0 {
		return ""
	}
	return bucketBarStyle.Render(strings.Repeat("█", max(files*bucketBarWidth/largest, 1)))
}
