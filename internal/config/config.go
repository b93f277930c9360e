// Package config loads and validates the histsearch runtime configuration.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/shellhist/search-tui/internal/tui/keymap"
)

// Style selects the overall chrome density of the TUI.
type Style string

const (
	StyleAuto    Style = "auto"
	StyleCompact Style = "compact"
	StyleFull    Style = "full"
)

// PreviewStrategy selects how the preview pane's height is computed.
type PreviewStrategy string

const (
	PreviewAuto   PreviewStrategy = "auto"
	PreviewStatic PreviewStrategy = "static"
	PreviewFixed  PreviewStrategy = "fixed"
)

// KeymapMode selects which keymap family is active by default.
type KeymapMode string

const (
	KeymapModeAuto      KeymapMode = "auto"
	KeymapModeEmacs     KeymapMode = "emacs"
	KeymapModeVimNormal KeymapMode = "vim-normal"
	KeymapModeVimInsert KeymapMode = "vim-insert"
)

// Config is the complete histsearch configuration surface (§6).
type Config struct {
	Style        Style `mapstructure:"style"`
	Invert       bool  `mapstructure:"invert"`
	ShowPreview  bool  `mapstructure:"show_preview"`
	ShowHelp     bool  `mapstructure:"show_help"`
	ShowTabs     bool  `mapstructure:"show_tabs"`
	InlineHeight int   `mapstructure:"inline_height"`

	Preview PreviewConfig `mapstructure:"preview"`
	Keys    KeysConfig    `mapstructure:"keys"`

	EnterAccept        bool `mapstructure:"enter_accept"`
	CtrlNShortcuts     bool `mapstructure:"ctrl_n_shortcuts"`
	SmartSort          bool `mapstructure:"smart_sort"`
	Workspaces         bool `mapstructure:"workspaces"`
	ScrollContextLines int  `mapstructure:"scroll_context_lines"`

	KeymapMode      KeymapMode        `mapstructure:"keymap_mode"`
	KeymapModeShell KeymapMode        `mapstructure:"keymap_mode_shell"`
	KeymapCursor    map[string]string `mapstructure:"keymap_cursor"`

	Keymap keymap.KeymapSetConfig `mapstructure:"keymap"`

	// Theme names the lipgloss color palette applied to the renderer
	// (one of styles.ThemeName's built-ins, e.g. "default", "nord",
	// "dracula").
	Theme string `mapstructure:"theme"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig controls where and how the session's debug log is
// written. An empty Dir logs to stderr and disables rotation.
type LoggingConfig struct {
	Dir        string `mapstructure:"dir"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// PreviewConfig controls the preview pane's sizing strategy.
type PreviewConfig struct {
	Strategy         PreviewStrategy `mapstructure:"strategy"`
	MaxPreviewHeight int             `mapstructure:"max_preview_height"`
}

// KeysConfig holds the boundary-behavior flags that parameterize default
// keymap construction (see internal/tui/keymap.Config).
type KeysConfig struct {
	Prefix              string `mapstructure:"prefix"`
	ScrollExits         bool   `mapstructure:"scroll_exits"`
	AcceptPastLineEnd   bool   `mapstructure:"accept_past_line_end"`
	ExitPastLineStart   bool   `mapstructure:"exit_past_line_start"`
	AcceptPastLineStart bool   `mapstructure:"accept_past_line_start"`
	AcceptWithBackspace bool   `mapstructure:"accept_with_backspace"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Style:        StyleAuto,
		Invert:       false,
		ShowPreview:  true,
		ShowHelp:     true,
		ShowTabs:     true,
		InlineHeight: 0,
		Preview:      PreviewConfig{Strategy: PreviewAuto, MaxPreviewHeight: 4},
		Keys: KeysConfig{
			Prefix:              "a",
			ScrollExits:         false,
			AcceptPastLineEnd:   false,
			ExitPastLineStart:   false,
			AcceptPastLineStart: false,
			AcceptWithBackspace: false,
		},
		EnterAccept:        false,
		CtrlNShortcuts:     false,
		SmartSort:          false,
		Workspaces:         false,
		ScrollContextLines: 0,
		KeymapMode:         KeymapModeAuto,
		KeymapModeShell:    KeymapModeAuto,
		KeymapCursor:       map[string]string{},
		Theme:              "default",
		Logging: LoggingConfig{
			Dir:        "",
			Level:      "WARN",
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
	}
}

// KeymapConfig converts the boundary-behavior flags into the
// internal/tui/keymap.Config used to build the default KeymapSet.
func (c *Config) KeymapConfig() keymap.Config {
	var prefixChar rune = 'a'
	if r := []rune(c.Keys.Prefix); len(r) > 0 {
		prefixChar = r[0]
	}

	shellMode := keymap.ModeEmacs
	switch c.KeymapModeShell {
	case KeymapModeVimNormal:
		shellMode = keymap.ModeVimNormal
	case KeymapModeVimInsert:
		shellMode = keymap.ModeVimInsert
	}

	return keymap.Config{
		ScrollExits:         c.Keys.ScrollExits,
		Invert:              c.Invert,
		AcceptPastLineEnd:   c.Keys.AcceptPastLineEnd,
		ExitPastLineStart:   c.Keys.ExitPastLineStart,
		AcceptPastLineStart: c.Keys.AcceptPastLineStart,
		AcceptWithBackspace: c.Keys.AcceptWithBackspace,
		EnterAccept:         c.EnterAccept,
		CtrlNShortcuts:      c.CtrlNShortcuts,
		PrefixChar:          prefixChar,
		KeymapModeShell:     shellMode,
	}
}

// EffectiveKeymapMode resolves KeymapModeAuto against the shell-reported default.
func (c *Config) EffectiveKeymapMode() KeymapMode {
	if c.KeymapMode != KeymapModeAuto {
		return c.KeymapMode
	}
	if c.KeymapModeShell != KeymapModeAuto && c.KeymapModeShell != "" {
		return c.KeymapModeShell
	}
	return KeymapModeEmacs
}

// ShellKind names the invoking shell, used to decide whether the
// session's AcceptMarker convention is understood by the shell
// wrapper that will receive the returned text (spec §12).
type ShellKind string

const (
	ShellUnknown ShellKind = "unknown"
	ShellBash    ShellKind = "bash"
	ShellZsh     ShellKind = "zsh"
	ShellFish    ShellKind = "fish"
	ShellXonsh   ShellKind = "xonsh"
)

// SupportsAccept reports whether k is one of the known shells whose
// wrapper script understands the accept-marker convention.
func (k ShellKind) SupportsAccept() bool {
	switch k {
	case ShellBash, ShellZsh, ShellFish, ShellXonsh:
		return true
	default:
		return false
	}
}

// DetectShellKind infers the invoking shell from HISTSEARCH_SHELL (set
// by the shell wrapper script) or, failing that, $SHELL.
func DetectShellKind() ShellKind {
	shell := os.Getenv("HISTSEARCH_SHELL")
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	switch filepath.Base(shell) {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	case "xonsh":
		return ShellXonsh
	default:
		return ShellUnknown
	}
}

// SetDefaults registers the built-in defaults with viper so that partially
// specified config files still produce a complete Config on Unmarshal.
func SetDefaults() {
	d := Default()

	viper.SetDefault("style", string(d.Style))
	viper.SetDefault("invert", d.Invert)
	viper.SetDefault("show_preview", d.ShowPreview)
	viper.SetDefault("show_help", d.ShowHelp)
	viper.SetDefault("show_tabs", d.ShowTabs)
	viper.SetDefault("inline_height", d.InlineHeight)

	viper.SetDefault("preview.strategy", string(d.Preview.Strategy))
	viper.SetDefault("preview.max_preview_height", d.Preview.MaxPreviewHeight)

	viper.SetDefault("keys.prefix", d.Keys.Prefix)
	viper.SetDefault("keys.scroll_exits", d.Keys.ScrollExits)
	viper.SetDefault("keys.accept_past_line_end", d.Keys.AcceptPastLineEnd)
	viper.SetDefault("keys.exit_past_line_start", d.Keys.ExitPastLineStart)
	viper.SetDefault("keys.accept_past_line_start", d.Keys.AcceptPastLineStart)
	viper.SetDefault("keys.accept_with_backspace", d.Keys.AcceptWithBackspace)

	viper.SetDefault("enter_accept", d.EnterAccept)
	viper.SetDefault("ctrl_n_shortcuts", d.CtrlNShortcuts)
	viper.SetDefault("smart_sort", d.SmartSort)
	viper.SetDefault("workspaces", d.Workspaces)
	viper.SetDefault("scroll_context_lines", d.ScrollContextLines)

	viper.SetDefault("keymap_mode", string(d.KeymapMode))
	viper.SetDefault("keymap_mode_shell", string(d.KeymapModeShell))
	viper.SetDefault("theme", d.Theme)

	viper.SetDefault("logging.dir", d.Logging.Dir)
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	viper.SetDefault("logging.compress", d.Logging.Compress)
}

// Load reads the configuration from viper into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults on error.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "histsearch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".histsearch"
	}
	return filepath.Join(home, ".config", "histsearch")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidStyles returns the list of valid style values.
func ValidStyles() []string {
	return []string{string(StyleAuto), string(StyleCompact), string(StyleFull)}
}

// IsValidStyle reports whether style is a recognized Style value.
func IsValidStyle(style string) bool {
	return slices.Contains(ValidStyles(), style)
}

// ValidPreviewStrategies returns the list of valid preview strategy values.
func ValidPreviewStrategies() []string {
	return []string{string(PreviewAuto), string(PreviewStatic), string(PreviewFixed)}
}

// IsValidPreviewStrategy reports whether strategy is a recognized PreviewStrategy value.
func IsValidPreviewStrategy(strategy string) bool {
	return slices.Contains(ValidPreviewStrategies(), strategy)
}

// ValidKeymapModes returns the list of valid keymap mode values.
func ValidKeymapModes() []string {
	return []string{string(KeymapModeAuto), string(KeymapModeEmacs), string(KeymapModeVimNormal), string(KeymapModeVimInsert)}
}

// IsValidKeymapMode reports whether mode is a recognized KeymapMode value.
func IsValidKeymapMode(mode string) bool {
	return slices.Contains(ValidKeymapModes(), mode)
}
