package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so every color is a lipgloss.AdaptiveColor. "Faint" styling is only used
// on dark backgrounds (faint text on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Selection highlight needs to stand out against the default surface.
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	// Secondary chrome (section titles, breadcrumbs, footers).
	colorChromeMutedFg lipgloss.TerminalColor = ac("240", "245")

	// The transient "Copied" acknowledgment and other positive accents.
	colorAccent lipgloss.TerminalColor = ac("28", "78")
)

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive panel.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors
// in a TUI. Here we only honor NO_COLOR and otherwise follow the terminal's
// capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector
	// reports, trust the env. Color probing under-reports on some
	// terminals.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection. Some
// terminals don't reliably report their background, which can make
// AdaptiveColor pick the wrong variant.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("INSPECT_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	// COLORFGBG heuristic (format like "15;0" = fg;bg).
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bg := strings.TrimSpace(parts[len(parts)-1])
		switch bg {
		case "0", "1", "2", "3", "4", "5", "6":
			lipgloss.SetHasDarkBackground(true)
		case "7", "8", "9", "10", "11", "12", "13", "14", "15":
			lipgloss.SetHasDarkBackground(false)
		}
	}
}

var (
	styleTitle        = lipgloss.NewStyle().Bold(true)
	styleSectionTitle = lipgloss.NewStyle().Foreground(colorChromeMutedFg).Bold(true)
	styleSelected     = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	styleMuted        = lipgloss.NewStyle().Foreground(colorMuted)
	styleAccent       = lipgloss.NewStyle().Foreground(colorAccent)
	styleHeader       = lipgloss.NewStyle().Foreground(colorChromeMutedFg)
)
