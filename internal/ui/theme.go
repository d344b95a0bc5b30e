package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, symbols and box borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending, Done lipgloss.Style
	High, Medium, Low                                    lipgloss.Style
	Selected                                             lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOverdue, SymDue       string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

// Themes lists the names ThemeNamed understands.
var Themes = []string{"classic", "neon", "mono"}

// ThemeNamed returns the named theme, classic for anything unknown.
func ThemeNamed(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
			High:         lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
			Medium:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Low:          lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			SymOverdue: "⚠", SymDue: "◷",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain.Bold(true), Muted: plain, Accent: plain, Success: plain,
			Error: plain, Pending: plain, Done: plain,
			High: plain, Medium: plain, Low: plain,
			Selected:     plain.Reverse(true),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			SymOverdue: "!", SymDue: "@",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	}
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		High:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Medium:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Low:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		SymOverdue: "⚠", SymDue: "📅",
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
	}
}
