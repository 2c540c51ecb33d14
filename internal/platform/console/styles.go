package console

import (
	"attackSimBackend/internal/core/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
	Muted       = lipgloss.Color("#6b7280")
)

// Styles are bound to one renderer so color detection follows the output writer.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Kind    map[domain.LogKind]lipgloss.Style
	Risk    map[domain.RiskLevel]lipgloss.Style
	Box     lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Divider lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(Info),
		Bold:  r.NewStyle().Bold(true),
		Muted: r.NewStyle().Foreground(Muted),
		Kind: map[domain.LogKind]lipgloss.Style{
			domain.LogInfo:    r.NewStyle().Foreground(Info),
			domain.LogAttempt: r.NewStyle().Foreground(Muted),
			domain.LogSuccess: r.NewStyle().Bold(true).Foreground(Success),
			domain.LogFailure: r.NewStyle().Foreground(Destructive),
			domain.LogWarning: r.NewStyle().Foreground(Warning),
		},
		Risk: map[domain.RiskLevel]lipgloss.Style{
			domain.RiskLow:      r.NewStyle().Foreground(Success),
			domain.RiskMedium:   r.NewStyle().Foreground(Warning),
			domain.RiskHigh:     r.NewStyle().Foreground(lipgloss.Color("#ff8a65")),
			domain.RiskCritical: r.NewStyle().Bold(true).Foreground(Destructive),
		},
		Box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Muted).Padding(0, 1),
		Header:  r.NewStyle().Bold(true).Padding(0, 1),
		Cell:    r.NewStyle().Padding(0, 1),
		Divider: r.NewStyle().Foreground(Muted),
	}
}
