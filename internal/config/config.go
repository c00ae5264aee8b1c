package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
	"github.com/rwejlgaard/timesheet/internal/model"
	"github.com/rwejlgaard/timesheet/internal/sink"
)

// Config represents the application configuration
type Config struct {
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Colors      ColorsConfig      `toml:"colors"`
	UI          UIConfig          `toml:"ui"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Sink        SinkConfig        `toml:"sink"`
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Up          []string `toml:"up"`
	Down        []string `toml:"down"`
	Select      []string `toml:"select"`
	Back        []string `toml:"back"`
	ToggleJob   []string `toml:"toggle_job"`
	AddTask     []string `toml:"add_task"`
	RemoveTask  []string `toml:"remove_task"`
	NextWorker  []string `toml:"next_worker"`
	PrevWorker  []string `toml:"prev_worker"`
	SetDate     []string `toml:"set_date"`
	Submit      []string `toml:"submit"`
	ToggleView  []string `toml:"toggle_view"`
	Help        []string `toml:"help"`
	Quit        []string `toml:"quit"`
	NextField   []string `toml:"next_field"`
	WizardBack  []string `toml:"wizard_back"`
	CommitEntry []string `toml:"commit_entry"`
}

// ColorsConfig holds color configurations
type ColorsConfig struct {
	Title    string `toml:"title"`
	Cursor   string `toml:"cursor"`
	Selected string `toml:"selected"`
	Category string `toml:"category"`
	Hours    string `toml:"hours"`
	Total    string `toml:"total"`
	Error    string `toml:"error"`
	Status   string `toml:"status"`
	Note     string `toml:"note"`
	Dialog   string `toml:"dialog"`
}

// UIConfig holds UI-related configurations
type UIConfig struct {
	DialogWidth      int    `toml:"dialog_width"`
	MinTerminalWidth int    `toml:"min_terminal_width"`
	StatusSeconds    int    `toml:"status_seconds"`
	HighlightStyle   string `toml:"highlight_style"`
}

// CategoryConfig is one task category and the task types it offers
type CategoryConfig struct {
	Name  string   `toml:"name"`
	Icon  string   `toml:"icon"`
	Tasks []string `toml:"tasks"`
}

// CatalogConfig holds the static roster, job list and category mapping
type CatalogConfig struct {
	Workers    []string         `toml:"workers"`
	Jobs       []string         `toml:"jobs"`
	Categories []CategoryConfig `toml:"categories"`
}

// SinkConfig selects where submitted timesheets are handed off to
type SinkConfig struct {
	Kind string `toml:"kind"` // stdout, yaml, xlsx or none; comma-separated to combine
	Path string `toml:"path"` // output directory for file sinks
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Keybindings: KeybindingsConfig{
			Up:          []string{"up", "k"},
			Down:        []string{"down", "j"},
			Select:      []string{"enter"},
			Back:        []string{"left", "h", "backspace"},
			ToggleJob:   []string{" "},
			AddTask:     []string{"a"},
			RemoveTask:  []string{"x", "D"},
			NextWorker:  []string{"w"},
			PrevWorker:  []string{"W"},
			SetDate:     []string{"d"},
			Submit:      []string{"S", "ctrl+s"},
			ToggleView:  []string{"v"},
			Help:        []string{"?"},
			Quit:        []string{"q", "ctrl+c"},
			NextField:   []string{"tab", "shift+tab"},
			WizardBack:  []string{"ctrl+b"},
			CommitEntry: []string{"enter"},
		},
		Colors: ColorsConfig{
			Title:    "99",
			Cursor:   "240",
			Selected: "33",
			Category: "33",
			Hours:    "39",
			Total:    "34",
			Error:    "196",
			Status:   "241",
			Note:     "246",
			Dialog:   "99",
		},
		UI: UIConfig{
			DialogWidth:      60,
			MinTerminalWidth: 40,
			StatusSeconds:    3,
			HighlightStyle:   "monokai",
		},
		Catalog: CatalogConfig{
			Workers: []string{"Livia", "Will", "Dar", "Dan", "Mike"},
			Jobs: []string{
				"Zevin Tingley",
				"Harbor View Renovation",
				"Oak Street Addition",
				"Riverside Deck",
			},
			Categories: []CategoryConfig{
				{Name: "Demo", Icon: "🔨", Tasks: []string{"Interior", "Exterior", "Roof", "Concrete", "Other demo"}},
				{Name: "Framing", Icon: "🏗️", Tasks: []string{"Exterior walls", "Interior walls", "Roof framing", "Floor joists", "Stairs", "Other framing"}},
				{Name: "Electrical", Icon: "⚡", Tasks: []string{"Rough-in", "Panel work", "Fixtures", "Troubleshooting", "Other electrical"}},
				{Name: "Plumbing", Icon: "🚰", Tasks: []string{"Rough-in", "Fixtures", "Gas lines", "Water heater", "Other plumbing"}},
				{Name: "HVAC", Icon: "❄️", Tasks: []string{"Ductwork", "Installation", "Repair", "Other HVAC"}},
				{Name: "Drywall", Icon: "🔲", Tasks: []string{"Hanging", "Taping", "Mudding", "Sanding", "Texturing", "Other drywall"}},
				{Name: "Painting", Icon: "🎨", Tasks: []string{"Prep", "Primer", "Interior", "Exterior", "Trim", "Other painting"}},
				{Name: "Flooring", Icon: "🪵", Tasks: []string{"Prep", "Installation", "Trim", "Finish", "Other flooring"}},
				{Name: "Finish", Icon: "✨", Tasks: []string{"Trim install", "Cabinets", "Countertops", "Hardware", "Other finish"}},
				{Name: "Cleanup", Icon: "🧹", Tasks: []string{"Site cleanup", "Debris removal", "Final cleanup", "Other cleanup"}},
				{Name: "Other", Icon: "📦", Tasks: []string{"Travel", "Shop time", "Material pickup", "Other work"}},
			},
		},
		Sink: SinkConfig{
			Kind: "stdout",
		},
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "timesheet", "config.toml"), nil
}

// LoadConfig loads the configuration from path, or from the default
// location when path is empty. A missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaultCfg := DefaultConfig()
		// If we can't save, just return defaults
		_ = defaultCfg.SaveTo(path)
		return defaultCfg, nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults for any missing values
	config.fillDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// Save saves the configuration to the default config file
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the configuration as TOML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// fillDefaults fills in any missing config values with defaults
func (c *Config) fillDefaults() {
	defaults := DefaultConfig()

	fillKeys := func(dst *[]string, def []string) {
		if len(*dst) == 0 {
			*dst = def
		}
	}
	kb, dkb := &c.Keybindings, defaults.Keybindings
	fillKeys(&kb.Up, dkb.Up)
	fillKeys(&kb.Down, dkb.Down)
	fillKeys(&kb.Select, dkb.Select)
	fillKeys(&kb.Back, dkb.Back)
	fillKeys(&kb.ToggleJob, dkb.ToggleJob)
	fillKeys(&kb.AddTask, dkb.AddTask)
	fillKeys(&kb.RemoveTask, dkb.RemoveTask)
	fillKeys(&kb.NextWorker, dkb.NextWorker)
	fillKeys(&kb.PrevWorker, dkb.PrevWorker)
	fillKeys(&kb.SetDate, dkb.SetDate)
	fillKeys(&kb.Submit, dkb.Submit)
	fillKeys(&kb.ToggleView, dkb.ToggleView)
	fillKeys(&kb.Help, dkb.Help)
	fillKeys(&kb.Quit, dkb.Quit)
	fillKeys(&kb.NextField, dkb.NextField)
	fillKeys(&kb.WizardBack, dkb.WizardBack)
	fillKeys(&kb.CommitEntry, dkb.CommitEntry)

	fillColor := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	col, dcol := &c.Colors, defaults.Colors
	fillColor(&col.Title, dcol.Title)
	fillColor(&col.Cursor, dcol.Cursor)
	fillColor(&col.Selected, dcol.Selected)
	fillColor(&col.Category, dcol.Category)
	fillColor(&col.Hours, dcol.Hours)
	fillColor(&col.Total, dcol.Total)
	fillColor(&col.Error, dcol.Error)
	fillColor(&col.Status, dcol.Status)
	fillColor(&col.Note, dcol.Note)
	fillColor(&col.Dialog, dcol.Dialog)

	// Fill UI if zero values
	if c.UI.DialogWidth == 0 {
		c.UI.DialogWidth = defaults.UI.DialogWidth
	}
	if c.UI.MinTerminalWidth == 0 {
		c.UI.MinTerminalWidth = defaults.UI.MinTerminalWidth
	}
	if c.UI.StatusSeconds == 0 {
		c.UI.StatusSeconds = defaults.UI.StatusSeconds
	}
	if c.UI.HighlightStyle == "" {
		c.UI.HighlightStyle = defaults.UI.HighlightStyle
	}

	// The catalog is replaced section by section, never merged entry by entry
	if len(c.Catalog.Workers) == 0 {
		c.Catalog.Workers = defaults.Catalog.Workers
	}
	if len(c.Catalog.Jobs) == 0 {
		c.Catalog.Jobs = defaults.Catalog.Jobs
	}
	if len(c.Catalog.Categories) == 0 {
		c.Catalog.Categories = defaults.Catalog.Categories
	}

	if c.Sink.Kind == "" {
		c.Sink.Kind = defaults.Sink.Kind
	}
}

// Validate checks the catalog section for duplicates and empty lists
func (c *Config) Validate() error {
	_, err := c.BuildCatalog()
	if err != nil {
		return err
	}
	kinds, err := sink.ParseKinds(c.Sink.Kind)
	if err != nil {
		return err
	}
	if sink.NeedsDir(kinds) && c.Sink.Path == "" {
		return errors.New("sink path is required for file sinks")
	}
	return nil
}

// BuildCatalog converts the catalog section into the immutable lookup
// structure the form works against
func (c *Config) BuildCatalog() (*model.Catalog, error) {
	categories := make([]model.Category, len(c.Catalog.Categories))
	for i, cat := range c.Catalog.Categories {
		categories[i] = model.Category{
			Name:  cat.Name,
			Icon:  cat.Icon,
			Tasks: cat.Tasks,
		}
	}
	return model.NewCatalog(c.Catalog.Workers, c.Catalog.Jobs, categories)
}

// BuildKeyBinding creates a key.Binding from config
func BuildKeyBinding(keys []string, help string, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, description),
	)
}

// GetAllKeybindings returns a map of all keybindings
func (c *Config) GetAllKeybindings() map[string][]string {
	return map[string][]string{
		"up":           c.Keybindings.Up,
		"down":         c.Keybindings.Down,
		"select":       c.Keybindings.Select,
		"back":         c.Keybindings.Back,
		"toggle_job":   c.Keybindings.ToggleJob,
		"add_task":     c.Keybindings.AddTask,
		"remove_task":  c.Keybindings.RemoveTask,
		"next_worker":  c.Keybindings.NextWorker,
		"prev_worker":  c.Keybindings.PrevWorker,
		"set_date":     c.Keybindings.SetDate,
		"submit":       c.Keybindings.Submit,
		"toggle_view":  c.Keybindings.ToggleView,
		"help":         c.Keybindings.Help,
		"quit":         c.Keybindings.Quit,
		"next_field":   c.Keybindings.NextField,
		"wizard_back":  c.Keybindings.WizardBack,
		"commit_entry": c.Keybindings.CommitEntry,
	}
}
