package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/sheet"
)

// Config holds all runtime configuration for a datenorm run.
type Config struct {
	DSN           string
	FilePath      string
	OutputPath    string // defaults to <input>_normalized.xlsx beside the input
	ProblemsPath  string // optional Parquet export of problem rows
	LogFormat     string // "text" or "json"
	LogLevel      string
	Columns       []string
	SortColumn    string
	Sort          bool
	OutputPattern string
	Sheet         string // single sheet to process; first sheet when empty
	AllSheets     bool
	NativeDates   bool
	ProblemSheet  bool
	DryRun        bool
}

// yamlConfig is the on-disk YAML structure. Pointers distinguish an absent
// key from a zero value.
type yamlConfig struct {
	Columns       []string `yaml:"columns"`
	SortColumn    *string  `yaml:"sort_column"`
	Sort          *bool    `yaml:"sort"`
	OutputPattern *string  `yaml:"output_pattern"`
	Sheet         *string  `yaml:"sheet"`
	AllSheets     *bool    `yaml:"all_sheets"`
	NativeDates   *bool    `yaml:"native_dates"`
	ProblemSheet  *bool    `yaml:"problem_sheet"`
	Output        *string  `yaml:"output"`
	Problems      *string  `yaml:"problems"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// explicit reports, by CLI flag name, which settings were given on the
// command line; those keep their value. A nil explicit lets the file
// override everything it sets.
func (c *Config) LoadFromFile(path string, explicit func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if yc.Columns != nil && !explicit("columns") {
		c.Columns = yc.Columns
	}
	setString(&c.SortColumn, yc.SortColumn, explicit("sort-column"))
	setBool(&c.Sort, yc.Sort, explicit("sort"))
	setString(&c.OutputPattern, yc.OutputPattern, explicit("pattern"))
	setString(&c.Sheet, yc.Sheet, explicit("sheet"))
	setBool(&c.AllSheets, yc.AllSheets, explicit("all-sheets"))
	setBool(&c.NativeDates, yc.NativeDates, explicit("native-dates"))
	setBool(&c.ProblemSheet, yc.ProblemSheet, explicit("problem-sheet"))
	setString(&c.OutputPath, yc.Output, explicit("output"))
	setString(&c.ProblemsPath, yc.Problems, explicit("problems"))

	if c.OutputPattern != "" {
		if _, ok := model.PatternByName(c.OutputPattern); !ok {
			return fmt.Errorf("unknown output_pattern %q in config (want one of %s)",
				c.OutputPattern, strings.Join(model.PatternNames(), ", "))
		}
	}
	return nil
}

func setString(dst *string, v *string, keep bool) {
	if v != nil && !keep {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool, keep bool) {
	if v != nil && !keep {
		*dst = *v
	}
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if len(c.columns()) == 0 {
		return fmt.Errorf("--columns is required")
	}
	if _, err := c.Pattern(); err != nil {
		return err
	}
	if c.AllSheets && c.Sheet != "" {
		return fmt.Errorf("--sheet and --all-sheets are mutually exclusive")
	}
	return nil
}

// ValidateDSN checks that an audit database is configured.
func (c *Config) ValidateDSN() error {
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("--dsn or DATENORM_DB_URL is required")
	}
	return nil
}

// Pattern resolves OutputPattern, defaulting to model.DefaultPattern.
func (c *Config) Pattern() (model.DatePattern, error) {
	if strings.TrimSpace(c.OutputPattern) == "" {
		return model.DefaultPattern, nil
	}
	p, ok := model.PatternByName(c.OutputPattern)
	if !ok {
		return "", fmt.Errorf("unknown output pattern %q (want one of %s)",
			c.OutputPattern, strings.Join(model.PatternNames(), ", "))
	}
	return p, nil
}

// Options converts the config into sheet processing options.
func (c *Config) Options() sheet.Options {
	p, err := c.Pattern()
	if err != nil {
		p = model.DefaultPattern
	}
	return sheet.Options{
		Columns:    c.columns(),
		SortColumn: strings.TrimSpace(c.SortColumn),
		Sort:       c.Sort,
		Pattern:    p,
	}
}

// Output returns OutputPath, or <dir>/<stem>_normalized.xlsx next to the input.
func (c *Config) Output() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	dir := filepath.Dir(c.FilePath)
	stem := strings.TrimSuffix(filepath.Base(c.FilePath), filepath.Ext(c.FilePath))
	return filepath.Join(dir, stem+"_normalized.xlsx")
}

// columns returns the configured columns with blanks dropped. Entries may
// themselves be comma-separated.
func (c *Config) columns() []string {
	var out []string
	for _, entry := range c.Columns {
		for _, col := range strings.Split(entry, ",") {
			if col = strings.TrimSpace(col); col != "" {
				out = append(out, col)
			}
		}
	}
	return out
}
