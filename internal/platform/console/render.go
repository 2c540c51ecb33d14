package console

import (
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/sweep"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var kindLabel = map[domain.LogKind]string{
	domain.LogInfo:    "INFO",
	domain.LogAttempt: "TRY ",
	domain.LogSuccess: "OK  ",
	domain.LogFailure: "FAIL",
	domain.LogWarning: "WARN",
}

// Renderer turns domain values into styled terminal text.
type Renderer struct {
	styles Styles
	config *Config
}

func NewRenderer(r *lipgloss.Renderer, cfg *Config) *Renderer {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &Renderer{styles: NewStyles(r), config: cfg}
}

func (r *Renderer) Event(ev domain.LogEvent) string {
	var sb strings.Builder
	if r.config.ShowTimestamps {
		sb.WriteString(r.styles.Muted.Render(ev.Timestamp.Format(r.config.TimeFormat)))
		sb.WriteString(" ")
	}
	style := r.styles.Kind[ev.Kind]
	label, ok := kindLabel[ev.Kind]
	if !ok {
		label = strings.ToUpper(string(ev.Kind))
	}
	sb.WriteString(style.Render("[" + label + "]"))
	sb.WriteString(" ")
	sb.WriteString(style.Render(ev.Message))
	return sb.String()
}

func (r *Renderer) Result(res domain.RunResult) string {
	outcome := "Password not found"
	if res.MatchFound {
		outcome = fmt.Sprintf("Password found: %s", res.FoundValue)
	}

	lines := []string{
		r.styles.Title.Render("Simulation Results"),
		r.row("Status", string(res.Status)),
		r.row("Target", res.TargetUsername),
		r.row("Strategy", res.StrategyName),
		r.row("Outcome", outcome),
		r.row("Attempts", strconv.Itoa(res.TotalAttempts)),
		r.row("Lockouts", strconv.Itoa(res.Lockouts)),
		r.row("Time", fmt.Sprintf("%.2fs", res.ElapsedSeconds)),
		r.row("Risk score", r.risk(res.RiskScore, res.RiskLevel)),
	}

	if r.config.ShowAnalysis && res.Analysis != nil {
		a := res.Analysis
		lines = append(lines,
			"",
			r.styles.Title.Render("Password Analysis"),
			r.row("Strength", fmt.Sprintf("%d/100", a.Strength)),
			r.row("Entropy", fmt.Sprintf("%.1f bits", a.Entropy)),
			r.row("Length", strconv.Itoa(a.Length)),
			r.row("Classes", classes(a)),
			r.row("Crack time", a.CrackTime),
		)
		for _, s := range a.Suggestions {
			lines = append(lines, r.styles.Muted.Render("  - "+s))
		}
	}

	return r.styles.Box.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) Sweep(entries []sweep.Entry) string {
	t := newTable("Defense comparison", "Scenario", "Status", "Attempts", "Lockouts", "Time", "Risk")
	for _, e := range entries {
		t.addRow(
			e.Scenario.Name,
			string(e.Result.Status),
			strconv.Itoa(e.Result.TotalAttempts),
			strconv.Itoa(e.Result.Lockouts),
			fmt.Sprintf("%.2fs", e.Result.ElapsedSeconds),
			fmt.Sprintf("%d (%s)", e.Result.RiskScore, e.Result.RiskLevel),
		)
	}
	return t.view(r.styles)
}

// Targets lists accounts without their secrets.
func (r *Renderer) Targets(accounts []domain.TargetAccount) string {
	t := newTable("Target accounts", "ID", "Username", "Active")
	for _, a := range accounts {
		active := "no"
		if a.IsActive {
			active = "yes"
		}
		t.addRow(a.ID, a.Username, active)
	}
	return t.view(r.styles)
}

func (r *Renderer) Strategies(attacks []domain.AttackType) string {
	t := newTable("Attack strategies", "ID", "Name", "Est. time", "Risk", "Description")
	for _, a := range attacks {
		t.addRow(string(a.ID), a.Name, a.EstimatedTime, string(a.RiskLevel), a.Description)
	}
	return t.view(r.styles)
}

func (r *Renderer) Rejection(err error) string {
	msg := err.Error()
	var reason domain.RejectionReason
	if errors.As(err, &reason) {
		msg = fmt.Sprintf("%s: %s", reason, reason.Hint())
	}
	return r.styles.Kind[domain.LogFailure].Render("Cannot start simulation. " + msg)
}

func (r *Renderer) row(label, value string) string {
	return r.styles.Bold.Render(fmt.Sprintf("%-11s", label)) + " " + value
}

func (r *Renderer) risk(score int, level domain.RiskLevel) string {
	return r.styles.Risk[level].Render(fmt.Sprintf("%d/100 (%s)", score, level))
}

func classes(a *domain.PasswordAnalysis) string {
	var parts []string
	if a.HasLowercase {
		parts = append(parts, "lower")
	}
	if a.HasUppercase {
		parts = append(parts, "upper")
	}
	if a.HasNumbers {
		parts = append(parts, "digits")
	}
	if a.HasSpecial {
		parts = append(parts, "special")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) view(styles Styles) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// lipgloss widths include padding
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(styles.Title.Render(t.title))
		sb.WriteString("\n")
	}

	sep := styles.Divider.Render("|")
	writeRow := func(style lipgloss.Style, cells []string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(styles.Header, t.headers)
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	sb.WriteString(styles.Divider.Render(strings.Repeat("-", max(total-1, 0))))
	sb.WriteString("\n")
	for _, row := range t.rows {
		writeRow(styles.Cell, row)
	}
	return strings.TrimRight(sb.String(), "\n")
}
