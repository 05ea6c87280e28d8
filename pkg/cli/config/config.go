package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the risk category configuration file
type AppConfig struct {
	Categories []Category `toml:"category"`
}

// Category is a [[category]] table. Unset optional fields keep the built-in
// value of the same category.
type Category struct {
	ID                 string   `toml:"id"`
	Title              string   `toml:"title"`
	Description        string   `toml:"description"`
	Impact             string   `toml:"impact"`
	Weight             *float64 `toml:"weight"`
	Mitigatable        *bool    `toml:"mitigatable"`
	MitigationStrategy string   `toml:"mitigation_strategy"`
	Strategies         []string `toml:"strategies"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	category := types.RiskCategory(c.ID)
	if err := category.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(CategoryIDKey, c.ID))
	}
	if c.Title == "" {
		return goerr.Wrap(ErrMissingTitle, "category title is required", goerr.V(CategoryIDKey, c.ID))
	}
	for _, s := range c.Strategies {
		if s == "" {
			return goerr.Wrap(ErrInvalidStrategies, "empty strategy template", goerr.V(CategoryIDKey, c.ID))
		}
	}

	if err := c.toEntry().Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(CategoryIDKey, c.ID))
	}
	return nil
}

// toEntry builds the category entry, filling unset fields from the built-in
// defaults
func (c *Category) toEntry() *model.RiskCategoryEntry {
	entry := &model.RiskCategoryEntry{
		Category:      types.RiskCategory(c.ID),
		Impact:        types.ImpactMedium,
		IsMitigatable: true,
	}
	for _, d := range model.DefaultRiskCategoryEntries() {
		if d.Category == entry.Category {
			entry = d
			break
		}
	}

	entry.Title = c.Title
	if c.Description != "" {
		entry.Description = c.Description
	}
	if c.Impact != "" {
		entry.Impact = types.ImpactLevel(c.Impact)
	}
	if c.Weight != nil {
		entry.Weight = *c.Weight
	}
	if c.Mitigatable != nil {
		entry.IsMitigatable = *c.Mitigatable
	}
	entry.MitigationStrategy = c.MitigationStrategy

	return entry
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	seen := make(map[string]bool)
	for i, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category", goerr.V(CategoryIndexKey, i))
		}
		if seen[cat.ID] {
			return goerr.Wrap(ErrDuplicateCategory, "category is defined twice", goerr.V(CategoryIDKey, cat.ID))
		}
		seen[cat.ID] = true
	}
	return nil
}

// CategoryEntries returns the configured entries in file order
func (a *AppConfig) CategoryEntries() []*model.RiskCategoryEntry {
	entries := make([]*model.RiskCategoryEntry, len(a.Categories))
	for i := range a.Categories {
		entries[i] = a.Categories[i].toEntry()
	}
	return entries
}

// StrategyCatalog returns the built-in catalog with the template lists of
// categories that set strategies replaced
func (a *AppConfig) StrategyCatalog() model.StrategyCatalog {
	catalog := model.DefaultStrategyCatalog()
	for _, cat := range a.Categories {
		if len(cat.Strategies) > 0 {
			catalog = catalog.With(types.RiskCategory(cat.ID), cat.Strategies)
		}
	}
	return catalog
}

// LoadAppConfiguration loads the risk category configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// App holds the CLI flag pointing at the category configuration file
type App struct {
	path string
}

// Flags returns CLI flags for the category configuration
func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Risk category configuration file (TOML). Built-in categories are used when omitted",
			Sources:     cli.EnvVars("DEALRADAR_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x App) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Path returns the configured file path
func (x *App) Path() string {
	return x.path
}

// Configure loads the category entries and fallback catalog. Without a
// configuration file the built-in defaults are returned.
func (x *App) Configure() ([]*model.RiskCategoryEntry, model.StrategyCatalog, error) {
	if x.path == "" {
		return model.DefaultRiskCategoryEntries(), model.DefaultStrategyCatalog(), nil
	}

	cfg, err := LoadAppConfiguration(x.path)
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Categories) == 0 {
		return model.DefaultRiskCategoryEntries(), cfg.StrategyCatalog(), nil
	}

	return cfg.CategoryEntries(), cfg.StrategyCatalog(), nil
}
