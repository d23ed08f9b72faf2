package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pthm/tonelint/internal/classifier"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Suggestion lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style

	// Tone styles
	Harsh   lipgloss.Style
	Firm    lipgloss.Style
	Polite  lipgloss.Style
	Neutral lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Check     lipgloss.Style
	Quote     lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError      string
	IconWarning    string
	IconSuggestion string
	IconInfo       string
	IconSuccess    string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		// Severity styles
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))       // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))    // Yellow
		s.Suggestion = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))       // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))    // Green

		// Tone styles
		s.Harsh = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
		s.Firm = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
		s.Polite = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
		s.Neutral = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

		// Structural styles
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Check = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Quote = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("7"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.IconError = "✗"
		s.IconWarning = "⚠"
		s.IconSuggestion = "\U0001f4a1"
		s.IconInfo = "ℹ"
		s.IconSuccess = "✓"
	} else {
		// No-op styles for non-TTY (plain text output)
		s.Error = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Suggestion = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Harsh = lipgloss.NewStyle()
		s.Firm = lipgloss.NewStyle()
		s.Polite = lipgloss.NewStyle()
		s.Neutral = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Check = lipgloss.NewStyle()
		s.Quote = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		// ASCII fallback icons
		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconSuggestion = "HINT:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Tone returns the style for a tone label
func (s *Styles) Tone(label classifier.Label) lipgloss.Style {
	switch label {
	case classifier.Harsh:
		return s.Harsh
	case classifier.Firm:
		return s.Firm
	case classifier.Polite:
		return s.Polite
	default:
		return s.Neutral
	}
}

// Score returns the style for a 0-100 clarity score
func (s *Styles) Score(score int) lipgloss.Style {
	switch {
	case score >= 75:
		return s.Success
	case score >= 50:
		return s.Warning
	default:
		return s.Error
	}
}
