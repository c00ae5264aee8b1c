package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rwejlgaard/timesheet/internal/config"
	"github.com/rwejlgaard/timesheet/internal/model"
	"github.com/rwejlgaard/timesheet/internal/sink"
	"github.com/rwejlgaard/timesheet/internal/ui"
	"github.com/spf13/cobra"
)

var (
	// Used for flags.
	configPath string
	workerName string
	workDate   string
	sinkKind   string
	outDir     string
	logFile    string
	forceInit  bool

	// rootCmd runs the interactive timesheet form
	rootCmd = &cobra.Command{
		Use:   "timesheet",
		Short: "Enter today's hours against jobs and task categories.",
		Long: `Timesheet is a terminal form for recording a day's work: pick your name and the
jobs you worked on, add tasks with hours and notes, then submit.`,
		SilenceUsage: true,
		RunE:         runTimesheet,
	}

	// catalogCmd prints the configured roster, jobs and categories
	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Print the configured workers, jobs and task categories.",
		RunE:  runCatalog,
	}

	// initCmd writes the default config file
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default config file.",
		Long: `Init writes the default configuration to the user config directory, or to
--config when given, so the roster, jobs and categories can be edited.`,
		RunE: runInit,
	}

	// keysCmd prints the configured keybindings
	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Print the configured keybindings.",
		RunE:  runKeys,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the TOML config file (default: user config dir).")

	rootCmd.Flags().StringVar(&workerName, "worker", "", "Preselect the worker name.")
	rootCmd.Flags().StringVar(&workDate, "date", "", "Work date (YYYY-MM-DD or +N/-N days from today).")
	rootCmd.Flags().StringVar(&sinkKind, "sink", "", "Where to submit: stdout, yaml, xlsx or none; comma-separated to combine (overrides config).")
	rootCmd.Flags().StringVar(&outDir, "out", "", "Output directory for yaml and xlsx sinks (overrides config).")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file.")

	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file.")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	Execute()
}

// newLogger returns a JSON logger writing to path, or discarding output
// when path is empty. The terminal belongs to the UI.
func newLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), f.Close, nil
}

// loadConfig loads the config file, falling back to defaults on error
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Error loading config, using defaults: %v\n", err)
		slog.Warn("config load failed, using defaults", "error", err, "path", configPath)
		return config.DefaultConfig()
	}
	return cfg
}

func runTimesheet(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg := loadConfig(cmd)
	if sinkKind != "" {
		cfg.Sink.Kind = sinkKind
	}
	if outDir != "" {
		cfg.Sink.Path = outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return err
	}

	today := time.Now()
	form := model.NewForm(catalog, today)
	if workerName != "" {
		if err := form.SetWorker(workerName); err != nil {
			return err
		}
	}
	if workDate != "" {
		date, err := model.ParseDate(workDate, today)
		if err != nil {
			return err
		}
		form.SetDate(date)
	}

	// The UI owns the terminal; JSON submissions are printed once it exits
	var pending bytes.Buffer
	submitter, err := sink.New(cfg.Sink.Kind, cfg.Sink.Path, &pending)
	if err != nil {
		return err
	}

	logger.Info("timesheet started", "sink", cfg.Sink.Kind, "date", form.DateString())

	runErr := ui.RunUI(cmd.Context(), ui.Options{
		Form:   form,
		Sink:   submitter,
		Config: cfg,
		Logger: logger,
	})
	if _, err := io.Copy(cmd.OutOrStdout(), &pending); err != nil {
		return fmt.Errorf("print submissions: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("running UI: %w", runErr)
	}
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return err
	}

	cmd.Println("Workers:")
	for _, w := range catalog.Workers() {
		cmd.Printf("  %s\n", w)
	}
	cmd.Println("\nJobs:")
	for _, j := range catalog.Jobs() {
		cmd.Printf("  %s\n", j)
	}
	cmd.Println("\nCategories:")
	for _, c := range catalog.Categories() {
		cmd.Printf("  %s %s: %s\n", c.Icon, c.Name, strings.Join(c.Tasks, ", "))
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	var err error
	if configPath == "" {
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(configPath)
	}
	if err != nil {
		return err
	}
	cmd.Printf("Wrote default config to %s\n", path)
	return nil
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	bindings := cfg.GetAllKeybindings()

	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		cmd.Printf("%-14s %s\n", action, strings.Join(quoteKeys(bindings[action]), ", "))
	}
	return nil
}

func quoteKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}
