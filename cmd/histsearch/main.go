// Command histsearch launches the interactive history search TUI and
// prints the selected (or accepted) command on exit, for a shell
// wrapper function to place on the command line or run directly.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shellhist/search-tui/internal/app"
	"github.com/shellhist/search-tui/internal/clipboard"
	"github.com/shellhist/search-tui/internal/config"
	"github.com/shellhist/search-tui/internal/controller"
	"github.com/shellhist/search-tui/internal/logging"
	"github.com/shellhist/search-tui/internal/search"
	"github.com/shellhist/search-tui/internal/searchengine"
	"github.com/shellhist/search-tui/internal/storage"
	"github.com/shellhist/search-tui/internal/tui/keymap"
	"github.com/shellhist/search-tui/internal/tui/renderer"
	"github.com/shellhist/search-tui/internal/tui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "histsearch",
	Short: "Interactive shell history search",
	Long: `histsearch is the interactive search core of a shell-history tool:
an incremental, fuzzy-searchable full-screen picker over your command
history that hands a selection back to the invoking shell.`,
	RunE: run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/histsearch/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().String("query", "", "initial query text")
	_ = viper.BindPFlag("_initial_query", rootCmd.Flags().Lookup("query"))

	rootCmd.Flags().String("history-file", "", "path to a newline-delimited history file (one command per line)")
	_ = viper.BindPFlag("_history_file", rootCmd.Flags().Lookup("history-file"))

	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeListCmd, themeExportCmd, themeSaveCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect and export color themes",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom theme names",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, errs := styles.DiscoverCustomThemes(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, "histsearch: theme warning:", e.Error())
			}
		}
		for _, name := range styles.BuiltinThemes() {
			fmt.Println(name)
		}
		for _, name := range styles.CustomThemeNames() {
			fmt.Println(name + " (custom)")
		}
		return nil
	},
}

var themeExportCmd = &cobra.Command{
	Use:   "export [theme]",
	Short: "Print a theme as a YAML template on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, errs := styles.DiscoverCustomThemes(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, "histsearch: theme warning:", e.Error())
			}
		}
		data, err := styles.ExportTheme(styles.ThemeName(args[0]))
		if err != nil {
			return fmt.Errorf("export theme: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var themeSaveCmd = &cobra.Command{
	Use:   "save [built-in-theme] [name]",
	Short: "Copy a built-in theme into the custom themes directory for editing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !styles.IsBuiltinTheme(args[0]) {
			return fmt.Errorf("%q is not a built-in theme", args[0])
		}
		palette := styles.GetPalette(styles.ThemeName(args[0]))
		theme := styles.ExportPaletteAsThemeFile(args[1], palette)
		if err := styles.SaveTheme(args[1], theme); err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		fmt.Printf("saved %s to %s\n", args[1], styles.ThemesDir())
		return nil
	},
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HISTSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, "histsearch: config warning:", e.Error())
		}
	}

	// A non-TTY stdout (piped output, redirected into a file, CI) cannot
	// host the alt-screen frame; force the minimal chrome rather than
	// let bubbletea fail to acquire raw mode.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		cfg.Style = config.StyleCompact
	}

	logLevel := cfg.Logging.Level
	if logLevel == "" {
		logLevel = logging.LevelWarn
	}
	logger, err := logging.NewLoggerWithRotation(cfg.Logging.Dir, logLevel, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if _, errs := styles.DiscoverCustomThemes(); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn("custom theme skipped", "error", e)
		}
	}
	styles.SetActiveTheme(styles.ThemeName(cfg.Theme))

	entries, err := loadHistory(viper.GetString("_history_file"))
	if err != nil {
		logger.Warn("history load failed, starting with an empty store", "error", err)
	}
	store := storage.NewStore()
	store.Seed(entries)

	keymaps, keymapWarnings := keymap.BuildKeymapSet(cfg.KeymapConfig(), cfg.Keymap)
	for _, w := range keymapWarnings {
		logger.Warn("keymap override skipped", "reason", w)
	}

	factory := searchengine.NewFactory(store)

	var clip clipboard.Clipboard = clipboard.NewSystem(logger)

	shell := config.DetectShellKind()

	initial := viper.GetString("_initial_query")
	ctrl := controller.New(initial, search.ModeFuzzy, keymaps, store, factory, clip)
	switch cfg.EffectiveKeymapMode() {
	case config.KeymapModeVimNormal:
		ctrl.State.KeymapMode = keymap.ModeVimNormal
	case config.KeymapModeVimInsert:
		ctrl.State.KeymapMode = keymap.ModeVimInsert
	}
	ctrl.Workspaces = cfg.Workspaces
	ctrl.ScrollContextLines = cfg.ScrollContextLines
	ctrl.ConfiguredModes = []search.SearchMode{search.ModeFuzzy, search.ModePrefix, search.ModeFullText, search.ModeSkim}
	ctrl.ShellSupportsAccept = shell.SupportsAccept()
	ctrl.Logger = logger
	if cfg.SmartSort {
		ctrl.Rank = search.DefaultRank
	}
	if err := ctrl.Requery(); err != nil {
		return fmt.Errorf("initial query: %w", err)
	}

	view := renderer.SearchView{
		ShowHelp:    cfg.ShowHelp,
		ShowTabs:    cfg.ShowTabs,
		ShowPreview: cfg.ShowPreview && cfg.Style != config.StyleCompact,
		Invert:      cfg.Invert,
		Preview: renderer.PreviewConfig{
			Strategy:         string(cfg.Preview.Strategy),
			MaxPreviewHeight: cfg.Preview.MaxPreviewHeight,
		},
	}

	outcome, err := app.Run(ctrl, view, updateChecker(), logger)
	if err != nil {
		return fmt.Errorf("event loop: %w", err)
	}

	fmt.Println(outcome.Text)
	return nil
}

// loadHistory reads one command per line from path. History persistence
// and shell-specific import formats are an explicit non-goal of the
// interactive core (§1); this is the minimal seam a real deployment's
// shell wrapper would populate from the actual on-disk history store.
func loadHistory(path string) ([]search.Entry, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	host, _ := os.Hostname()
	cwd, _ := os.Getwd()

	var entries []search.Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	now := time.Now()
	i := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, search.Entry{
			ID:        fmt.Sprintf("hist-%d", i),
			Command:   line,
			Directory: cwd,
			Host:      host,
			Timestamp: now.Add(-time.Duration(i) * time.Second),
			ExitCode:  0,
		})
		i++
	}
	return entries, scanner.Err()
}

// updateChecker is left nil: version-update notification requires a
// network collaborator that, like history sync, is out of scope for
// the interactive core (§1, §6).
func updateChecker() app.UpdateChecker {
	return nil
}
