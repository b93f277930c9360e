package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains all the lipgloss styles built from a color palette.
// This allows styles to be regenerated when the theme changes.
type ThemedStyles struct {
	// Colors from the palette
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	WarningColor   lipgloss.Color
	ErrorColor     lipgloss.Color
	MutedColor     lipgloss.Color
	SurfaceColor   lipgloss.Color
	TextColor      lipgloss.Color
	BorderColor    lipgloss.Color
	BlueColor      lipgloss.Color

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Surface   lipgloss.Style
	Text      lipgloss.Style

	// Base styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Content area
	ContentBox lipgloss.Style

	// Header
	Header lipgloss.Style

	// Footer / status bar
	StatusBar lipgloss.Style

	// Selected row / active tab
	SidebarItemActive lipgloss.Style

	// Messages
	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style
	WarningMsg lipgloss.Style
}

// NewThemedStyles creates a ThemedStyles from the given color palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{
		// Store colors for direct access
		PrimaryColor:   p.Primary,
		SecondaryColor: p.Secondary,
		WarningColor:   p.Warning,
		ErrorColor:     p.Error,
		MutedColor:     p.Muted,
		SurfaceColor:   p.Surface,
		TextColor:      p.Text,
		BorderColor:    p.Border,
		BlueColor:      p.Blue,
	}

	// Build all the styles
	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Surface = lipgloss.NewStyle().Background(p.Surface)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	s.ContentBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Border).
		MarginBottom(1).
		PaddingBottom(1)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1)

	s.SidebarItemActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text).
		Background(p.Primary).
		Padding(0, 1).
		MarginBottom(0)

	s.ErrorMsg = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	s.SuccessMsg = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	s.WarningMsg = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	return s
}

// activeTheme holds the currently active themed styles.
// This is set via SetActiveTheme and provides backwards compatibility
// with code that uses the global style variables.
var activeTheme *ThemedStyles

func init() {
	// Initialize with default theme
	activeTheme = NewThemedStyles(DefaultPalette())
}

// SetActiveTheme updates the active theme to the specified theme name.
// This updates all the global style variables to use the new theme colors.
//
// Note: This function is not thread-safe. histsearch calls it once from
// cmd/histsearch at startup, before the Bubble Tea program starts.
func SetActiveTheme(name ThemeName) {
	palette := GetPalette(name)
	activeTheme = NewThemedStyles(palette)
	syncGlobalStyles()
}

// GetActiveTheme returns the currently active themed styles.
func GetActiveTheme() *ThemedStyles {
	return activeTheme
}

// syncGlobalStyles updates the global style variables to match the active theme.
// This maintains backwards compatibility with existing code that uses
// the package-level style variables directly.
func syncGlobalStyles() {
	// Update colors
	PrimaryColor = activeTheme.PrimaryColor
	SecondaryColor = activeTheme.SecondaryColor
	WarningColor = activeTheme.WarningColor
	ErrorColor = activeTheme.ErrorColor
	MutedColor = activeTheme.MutedColor
	SurfaceColor = activeTheme.SurfaceColor
	TextColor = activeTheme.TextColor
	BorderColor = activeTheme.BorderColor
	BlueColor = activeTheme.BlueColor

	// Update convenience styles
	Primary = activeTheme.Primary
	Secondary = activeTheme.Secondary
	Warning = activeTheme.Warning
	Error = activeTheme.Error
	Muted = activeTheme.Muted
	Surface = activeTheme.Surface
	Text = activeTheme.Text

	// Update base styles
	Title = activeTheme.Title
	Subtitle = activeTheme.Subtitle

	// Update content box
	ContentBox = activeTheme.ContentBox

	// Update header
	Header = activeTheme.Header

	// Update status bar
	StatusBar = activeTheme.StatusBar

	// Update selected row / active tab
	SidebarItemActive = activeTheme.SidebarItemActive

	// Update messages
	ErrorMsg = activeTheme.ErrorMsg
	SuccessMsg = activeTheme.SuccessMsg
	WarningMsg = activeTheme.WarningMsg
}
