// Package config provides Viper-based configuration loading for the armor simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EngineConfig holds the tunables of the penetration engine.
type EngineConfig struct {
	// DeflectEpsilon is the half-width of the deflection roll window around the
	// attack's penetration value.
	DeflectEpsilon float64 `mapstructure:"deflect_epsilon"`
	// ParryCombatantMax is the exclusive upper bound of the random factor applied
	// to an attack parried by a living combatant.
	ParryCombatantMax float64 `mapstructure:"parry_combatant_max"`
	// ParryObjectFactor scales kinetic attacks parried by an inanimate object.
	ParryObjectFactor float64 `mapstructure:"parry_object_factor"`
	// Seed selects a deterministic random source when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig locates the YAML definition files.
type ContentConfig struct {
	DamageFile    string `mapstructure:"damage_file"`
	MaterialsFile string `mapstructure:"materials_file"`
	ApparelDir    string `mapstructure:"apparel_dir"`
	WeaponsDir    string `mapstructure:"weapons_dir"`
	BodiesDir     string `mapstructure:"bodies_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEngine(c.Engine); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.DeflectEpsilon < 0 {
		errs = append(errs, fmt.Sprintf("engine.deflect_epsilon must be >= 0, got %v", e.DeflectEpsilon))
	}
	if e.ParryCombatantMax < 0 || e.ParryCombatantMax > 1 {
		errs = append(errs, fmt.Sprintf("engine.parry_combatant_max must be in [0, 1], got %v", e.ParryCombatantMax))
	}
	if e.ParryObjectFactor < 0 || e.ParryObjectFactor > 1 {
		errs = append(errs, fmt.Sprintf("engine.parry_object_factor must be in [0, 1], got %v", e.ParryObjectFactor))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.DamageFile == "" {
		return errors.New("content.damage_file must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARMORSIM_ prefix
	v.SetEnvPrefix("ARMORSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Config populated only with default values.
//
// Postcondition: Defaults().Validate() == nil.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshal of plain defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("engine.deflect_epsilon", 0.05)
	v.SetDefault("engine.parry_combatant_max", 0.5)
	v.SetDefault("engine.parry_object_factor", 0.1)
	v.SetDefault("engine.seed", 0)

	v.SetDefault("content.damage_file", "content/damage.yaml")
	v.SetDefault("content.materials_file", "content/materials.yaml")
	v.SetDefault("content.apparel_dir", "content/apparel")
	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.bodies_dir", "content/bodies")
}
