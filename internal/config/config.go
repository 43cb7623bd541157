// Package config loads the YAML file that plays the role of every external
// collaborator the engine needs: timezone and sunset time (normally supplied
// by a prayer-times service), the entity list (normally a backend), and the
// completion keys (normally a completion store).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"miqat/internal/hijri"
	"miqat/internal/model"
)

const civilDateLayout = "2006-01-02"

// DefaultLookbackDays is the product default for the overdue scan window.
const DefaultLookbackDays = 7

// RecurrenceConfig mirrors model.RecurrenceRule in YAML form; only the
// fields of the active type are read.
type RecurrenceConfig struct {
	Type string `yaml:"type"`

	// Weekdays are 0=Sunday .. 6=Saturday, for type "weekly".
	Weekdays []int `yaml:"weekdays,omitempty"`

	// Every/Unit/Anchor configure type "interval"; unit is "days" or "weeks".
	Every  int    `yaml:"every,omitempty"`
	Unit   string `yaml:"unit,omitempty"`
	Anchor string `yaml:"anchor,omitempty"`

	// Day/Month/Calendar configure "monthly_by_day" and "annual";
	// calendar is "lunar" or "civil".
	Day      int    `yaml:"day,omitempty"`
	Month    int    `yaml:"month,omitempty"`
	Calendar string `yaml:"calendar,omitempty"`

	// DueDate is the "one_time" target day, "YYYY-MM-DD".
	DueDate string `yaml:"due_date,omitempty"`
}

// EntityConfig is one trackable record as stored in the config file.
type EntityConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	// Kind is "habit", "due" or "community".
	Kind string `yaml:"kind"`

	// Start and End bound the schedule, "YYYY-MM-DD"; End may be empty.
	Start string `yaml:"start"`
	End   string `yaml:"end,omitempty"`

	Active bool `yaml:"active"`

	// Binding is "pre_sunset" (default) or "post_sunset" and picks which
	// side of the Maghrib boundary the entity's lunar date is read from.
	Binding string `yaml:"binding,omitempty"`

	Recurrence RecurrenceConfig `yaml:"recurrence"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone all day boundaries are computed in.
	Timezone string `yaml:"timezone"`

	// Sunset is the local Maghrib time as "HH:MM". Normally produced by a
	// prayer-times computation; an empty value degrades the day boundary
	// to civil midnight with a logged warning.
	Sunset string `yaml:"sunset"`

	// LookbackDays is how far the overdue scan walks into the past.
	LookbackDays int `yaml:"lookback_days"`

	Entities []EntityConfig `yaml:"entities"`

	// Completed holds resolved occurrence keys, "entityID:lunarKey".
	Completed []string `yaml:"completed,omitempty"`
}

// Default returns an in-memory default configuration with a few sample
// practices, written to disk on first run.
func Default() *Config {
	return &Config{
		Timezone:     "UTC",
		Sunset:       "18:30",
		LookbackDays: DefaultLookbackDays,
		Entities: []EntityConfig{
			{
				ID: "quran-daily", Name: "Read Qur'an", Kind: "habit",
				Start: "2024-01-01", Active: true,
				Recurrence: RecurrenceConfig{Type: "daily"},
			},
			{
				ID: "sadaqah-monthly", Name: "Monthly sadaqah", Kind: "due",
				Start: "2024-01-01", Active: true,
				Recurrence: RecurrenceConfig{Type: "monthly_by_day", Day: 1, Calendar: "lunar"},
			},
			{
				ID: "tahajjud", Name: "Tahajjud prayer", Kind: "habit",
				Start: "2024-01-01", Active: true, Binding: "post_sunset",
				Recurrence: RecurrenceConfig{Type: "weekly", Weekdays: []int{4, 5}},
			},
		},
	}
}

// Load reads the config at path, creating it with defaults on first run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config with owner-only permissions.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.LookbackDays <= 0 {
		c.LookbackDays = DefaultLookbackDays
	}
}

// Location resolves the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CompletedSet returns the completion keys as a lookup set.
func (c *Config) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(c.Completed))
	for _, k := range c.Completed {
		set[k] = true
	}
	return set
}

// BuildEntities converts the configured entities to model values. Records
// that fail validation are skipped and reported as warnings rather than
// aborting the load; one corrupt entity must not take the tracker down.
func (c *Config) BuildEntities() ([]model.Entity, []error) {
	entities := make([]model.Entity, 0, len(c.Entities))
	var warns []error
	for _, ec := range c.Entities {
		e, err := ec.toEntity()
		if err != nil {
			warns = append(warns, fmt.Errorf("config: entity %q skipped: %w", ec.ID, err))
			continue
		}
		entities = append(entities, e)
	}
	return entities, warns
}

func (ec EntityConfig) toEntity() (model.Entity, error) {
	start, err := time.Parse(civilDateLayout, ec.Start)
	if err != nil {
		return model.Entity{}, fmt.Errorf("start date: %w", err)
	}

	var end *time.Time
	if ec.End != "" {
		parsed, err := time.Parse(civilDateLayout, ec.End)
		if err != nil {
			return model.Entity{}, fmt.Errorf("end date: %w", err)
		}
		end = &parsed
	}

	binding := hijri.Binding(ec.Binding)
	if ec.Binding == "" {
		binding = hijri.BindPreSunset
	}

	rule, err := ec.Recurrence.toRule()
	if err != nil {
		return model.Entity{}, err
	}

	e := model.Entity{
		ID:      ec.ID,
		Name:    ec.Name,
		Kind:    model.Kind(ec.Kind),
		Start:   start,
		End:     end,
		Active:  ec.Active,
		Binding: binding,
		Rule:    rule,
	}
	if err := e.Validate(); err != nil {
		return model.Entity{}, err
	}
	return e, nil
}

func (rc RecurrenceConfig) toRule() (model.RecurrenceRule, error) {
	rule := model.RecurrenceRule{
		Type:     model.RecurrenceType(rc.Type),
		Every:    rc.Every,
		Unit:     model.IntervalUnit(rc.Unit),
		Day:      rc.Day,
		Month:    rc.Month,
		Calendar: model.CalendarSystem(rc.Calendar),
	}
	for _, d := range rc.Weekdays {
		rule.Weekdays = append(rule.Weekdays, time.Weekday(d))
	}
	if rc.Anchor != "" {
		anchor, err := time.Parse(civilDateLayout, rc.Anchor)
		if err != nil {
			return model.RecurrenceRule{}, fmt.Errorf("anchor date: %w", err)
		}
		rule.Anchor = anchor
	}
	if rc.DueDate != "" {
		due, err := time.Parse(civilDateLayout, rc.DueDate)
		if err != nil {
			return model.RecurrenceRule{}, fmt.Errorf("due date: %w", err)
		}
		rule.DueDate = due
	}
	return rule, nil
}
