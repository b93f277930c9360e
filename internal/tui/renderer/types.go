// Package renderer provides interfaces and types for TUI rendering components.
// It establishes the rendering abstraction layer used throughout the TUI system.
package renderer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shellhist/search-tui/internal/tui/styles"
)

// Renderer is the base interface for all rendering components.
// Components implementing this interface can produce a string representation
// of their visual output given available dimensions.
type Renderer interface {
	// Render produces the visual output for this component.
	// The ctx parameter provides dimensions, styles, and theme configuration.
	Render(ctx RenderContext) string
}

// RenderContext contains all contextual information needed for rendering.
// It encapsulates dimensions, active styles, and theme configuration to
// provide a consistent rendering environment across all components.
type RenderContext struct {
	// Width is the available horizontal space in characters
	Width int

	// Height is the available vertical space in lines
	Height int

	// Styles provides access to the active style configuration
	Styles *StyleConfig

	// Theme holds the current theme configuration
	Theme *ThemeConfig

	// Focused indicates whether this component or its parent has focus
	Focused bool
}

// NewRenderContext creates a new RenderContext with the specified dimensions.
// It initializes with default styles and theme configuration.
func NewRenderContext(width, height int) RenderContext {
	return RenderContext{
		Width:   width,
		Height:  height,
		Styles:  DefaultStyleConfig(),
		Theme:   DefaultThemeConfig(),
		Focused: false,
	}
}

// WithFocus returns a copy of the context with the focus state set.
func (ctx RenderContext) WithFocus(focused bool) RenderContext {
	ctx.Focused = focused
	return ctx
}

// WithDimensions returns a copy of the context with updated dimensions.
func (ctx RenderContext) WithDimensions(width, height int) RenderContext {
	ctx.Width = width
	ctx.Height = height
	return ctx
}

// WithWidth returns a copy of the context with updated width only.
func (ctx RenderContext) WithWidth(width int) RenderContext {
	ctx.Width = width
	return ctx
}

// WithHeight returns a copy of the context with updated height only.
func (ctx RenderContext) WithHeight(height int) RenderContext {
	ctx.Height = height
	return ctx
}

// StyleConfig holds references to the active lipgloss styles.
// This allows renderers to use consistent styling across the application.
type StyleConfig struct {
	// Border styles
	Border       lipgloss.Style
	BorderActive lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style

	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style

	// Interactive styles
	Selected lipgloss.Style
	Focused  lipgloss.Style
}

// DefaultStyleConfig returns a StyleConfig initialized with the default styles
// from the styles package.
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		Border:       styles.ContentBox,
		BorderActive: styles.ContentBox.BorderForeground(styles.PrimaryColor),
		Content:      lipgloss.NewStyle(),
		Header:       styles.Header,
		Footer:       styles.StatusBar,
		Title:        styles.Title,
		Subtitle:     styles.Subtitle,
		Muted:        styles.Muted,
		Error:        styles.ErrorMsg,
		Warning:      styles.WarningMsg,
		Success:      styles.SuccessMsg,
		Selected:     styles.SidebarItemActive,
		Focused:      lipgloss.NewStyle().Foreground(styles.PrimaryColor),
	}
}

// ThemeConfig holds color and appearance configuration for the current theme.
type ThemeConfig struct {
	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color
	Info    lipgloss.Color

	// Surface colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Text colors
	Text      lipgloss.Color
	TextMuted lipgloss.Color
}

// DefaultThemeConfig returns a ThemeConfig with the default color scheme
// from the styles package.
func DefaultThemeConfig() *ThemeConfig {
	return &ThemeConfig{
		Primary:    styles.PrimaryColor,
		Secondary:  styles.SecondaryColor,
		Accent:     styles.BlueColor,
		Error:      styles.ErrorColor,
		Warning:    styles.WarningColor,
		Success:    styles.SecondaryColor,
		Info:       styles.BlueColor,
		Background: lipgloss.Color("#000000"),
		Surface:    styles.SurfaceColor,
		Border:     styles.BorderColor,
		Text:       styles.TextColor,
		TextMuted:  styles.MutedColor,
	}
}

// BorderConfig specifies border styling options.
type BorderConfig struct {
	// Style specifies the border style (rounded, normal, double, etc.)
	Style lipgloss.Border

	// Color specifies the border color
	Color lipgloss.Color

	// ColorFocused specifies the border color when focused
	ColorFocused lipgloss.Color

	// Title is an optional title to display in the border
	Title string

	// TitleAlignment specifies where to place the title (left, center, right)
	TitleAlignment lipgloss.Position
}

// DefaultBorderConfig returns a BorderConfig with rounded borders and
// default colors from the theme.
func DefaultBorderConfig() BorderConfig {
	return BorderConfig{
		Style:          lipgloss.RoundedBorder(),
		Color:          styles.BorderColor,
		ColorFocused:   styles.PrimaryColor,
		TitleAlignment: lipgloss.Left,
	}
}

// BorderedRenderer wraps content in a styled border.
type BorderedRenderer struct {
	// Content is the renderer whose output will be bordered.
	Content Renderer

	// Config specifies border styling options.
	Config BorderConfig
}

// Render implements the Renderer interface.
// It renders the content and wraps it in a border, accounting for
// border dimensions when passing context to the content renderer.
func (b *BorderedRenderer) Render(ctx RenderContext) string {
	// Account for border dimensions (2 chars horizontal, 2 lines vertical)
	contentCtx := ctx.WithDimensions(ctx.Width-2, ctx.Height-2)

	content := ""
	if b.Content != nil {
		content = b.Content.Render(contentCtx)
	}

	borderColor := b.Config.Color
	if ctx.Focused && b.Config.ColorFocused != "" {
		borderColor = b.Config.ColorFocused
	}

	style := lipgloss.NewStyle().
		Border(b.Config.Style).
		BorderForeground(borderColor).
		Width(ctx.Width - 2). // lipgloss width is content width
		Height(ctx.Height - 2)

	return style.Render(content)
}

// NewBorderedRenderer creates a BorderedRenderer with default configuration.
func NewBorderedRenderer(content Renderer) *BorderedRenderer {
	return &BorderedRenderer{
		Content: content,
		Config:  DefaultBorderConfig(),
	}
}

// WithConfig returns a copy of the BorderedRenderer with updated configuration.
func (b *BorderedRenderer) WithConfig(config BorderConfig) *BorderedRenderer {
	return &BorderedRenderer{
		Content: b.Content,
		Config:  config,
	}
}

// StaticRenderer renders a fixed string regardless of context.
// Useful for simple labels or static content.
type StaticRenderer struct {
	Content string
}

// Render implements the Renderer interface.
func (s *StaticRenderer) Render(_ RenderContext) string {
	return s.Content
}

// NewStaticRenderer creates a StaticRenderer with the given content.
func NewStaticRenderer(content string) *StaticRenderer {
	return &StaticRenderer{Content: content}
}
