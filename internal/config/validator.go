package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shellhist/search-tui/internal/condition"
	"github.com/shellhist/search-tui/internal/keyinput"
	"github.com/shellhist/search-tui/internal/logging"
	"github.com/shellhist/search-tui/internal/tui/keymap"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path (e.g., "preview.max_preview_height")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found.
// It does not modify c. Per §7, config errors never abort the session: the
// histsearch command prints these as warnings and runs with the loaded values.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateTop()...)
	errors = append(errors, c.validatePreview()...)
	errors = append(errors, c.validateKeys()...)
	errors = append(errors, c.validateKeymapModes()...)
	errors = append(errors, c.validateKeymapOverrides()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateTop() []ValidationError {
	var errors []ValidationError

	if c.Style != "" && !IsValidStyle(string(c.Style)) {
		errors = append(errors, ValidationError{
			Field:   "style",
			Value:   c.Style,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidStyles(), ", ")),
		})
	}

	if c.InlineHeight < 0 {
		errors = append(errors, ValidationError{
			Field:   "inline_height",
			Value:   c.InlineHeight,
			Message: "must be >= 0 (0 means fullscreen)",
		})
	}

	if c.ScrollContextLines < 0 {
		errors = append(errors, ValidationError{
			Field:   "scroll_context_lines",
			Value:   c.ScrollContextLines,
			Message: "must be >= 0",
		})
	}

	return errors
}

func (c *Config) validatePreview() []ValidationError {
	var errors []ValidationError

	if c.Preview.Strategy != "" && !IsValidPreviewStrategy(string(c.Preview.Strategy)) {
		errors = append(errors, ValidationError{
			Field:   "preview.strategy",
			Value:   c.Preview.Strategy,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidPreviewStrategies(), ", ")),
		})
	}

	if c.Preview.MaxPreviewHeight < 1 {
		errors = append(errors, ValidationError{
			Field:   "preview.max_preview_height",
			Value:   c.Preview.MaxPreviewHeight,
			Message: "must be >= 1",
		})
	}

	return errors
}

func (c *Config) validateKeys() []ValidationError {
	var errors []ValidationError

	if c.Keys.Prefix != "" {
		if _, err := keyinput.Parse(c.Keys.Prefix); err != nil {
			errors = append(errors, ValidationError{
				Field:   "keys.prefix",
				Value:   c.Keys.Prefix,
				Message: fmt.Sprintf("not a valid key specifier: %s", err),
			})
		}
	}

	return errors
}

func (c *Config) validateKeymapModes() []ValidationError {
	var errors []ValidationError

	if c.KeymapMode != "" && !IsValidKeymapMode(string(c.KeymapMode)) {
		errors = append(errors, ValidationError{
			Field:   "keymap_mode",
			Value:   c.KeymapMode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidKeymapModes(), ", ")),
		})
	}
	if c.KeymapModeShell != "" && !IsValidKeymapMode(string(c.KeymapModeShell)) {
		errors = append(errors, ValidationError{
			Field:   "keymap_mode_shell",
			Value:   c.KeymapModeShell,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidKeymapModes(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be >= 0 (0 disables rotation)",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be >= 0",
		})
	}

	return errors
}

// validateKeymapOverrides checks every [keymap] override eagerly so that
// build-time warnings (§4.3's "invalid entries are logged and skipped")
// can be surfaced before the keymap is actually built.
func (c *Config) validateKeymapOverrides() []ValidationError {
	var errors []ValidationError

	sections := map[string]keymap.KeymapConfig{
		"keymap.emacs":      c.Keymap.Emacs,
		"keymap.vim_normal": c.Keymap.VimNormal,
		"keymap.vim_insert": c.Keymap.VimInsert,
		"keymap.inspector":  c.Keymap.Inspector,
		"keymap.prefix":     c.Keymap.Prefix,
	}

	for field, section := range sections {
		for key, specs := range section {
			if _, err := keyinput.ParseSequence(key); err != nil {
				errors = append(errors, ValidationError{
					Field:   field,
					Value:   key,
					Message: fmt.Sprintf("invalid key specifier: %s", err),
				})
				continue
			}
			for _, spec := range specs {
				if !keymap.IsValidAction(spec.Action) {
					errors = append(errors, ValidationError{
						Field:   field + "." + key,
						Value:   spec.Action,
						Message: "unknown action name",
					})
				}
				if spec.When != "" {
					if _, err := condition.Parse(spec.When); err != nil {
						errors = append(errors, ValidationError{
							Field:   field + "." + key,
							Value:   spec.When,
							Message: fmt.Sprintf("invalid condition: %s", err),
						})
					}
				}
			}
		}
	}

	return errors
}
