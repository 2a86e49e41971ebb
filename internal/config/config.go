// Package config loads s3inventory settings from flags, environment and a YAML file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/younsl/s3inventory/pkg/report"
	"github.com/younsl/s3inventory/pkg/utils"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. S3INVENTORY_REGION
	EnvPrefix = "S3INVENTORY"

	configName = ".s3inventory"
	configType = "yaml"
)

// Configuration keys
const (
	KeyRegion        = "region"
	KeyOutput        = "output"
	KeyStartRow      = "start_row"
	KeyStartCol      = "start_col"
	KeyLegacyScoring = "legacy_scoring"
	KeyDryRun        = "dry_run"
	KeyEstimateCost  = "estimate_cost"
	KeyLogLevel      = "log_level"
)

// DefaultOutput is the workbook updated when no output is configured
var DefaultOutput = filepath.Join("file", "inventarioS3CR.xlsx")

// Config holds the settings of an inventory run
type Config struct {
	Region        string `mapstructure:"region" validate:"required,aws_region"`
	Output        string `mapstructure:"output" validate:"required"`
	StartRow      int    `mapstructure:"start_row" validate:"min=1"`
	StartCol      int    `mapstructure:"start_col" validate:"min=1"`
	LegacyScoring bool   `mapstructure:"legacy_scoring"`
	DryRun        bool   `mapstructure:"dry_run"`
	EstimateCost  bool   `mapstructure:"estimate_cost"`
	LogLevel      string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
}

// New creates a viper instance reading cfgFile, or $HOME/.s3inventory.yaml when cfgFile is empty.
// A missing default config file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("error getting user home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(configName)
		v.SetConfigType(configType)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return v, nil
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRegion, utils.GetDefaultRegion())
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyStartRow, report.DefaultStartRow)
	v.SetDefault(KeyStartCol, report.DefaultStartCol)
	v.SetDefault(KeyLegacyScoring, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyEstimateCost, false)
	v.SetDefault(KeyLogLevel, "info")
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.RegisterValidation("aws_region", func(fl validator.FieldLevel) bool {
		return utils.IsValidRegion(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value for %s: %v (rule %s)", fe.Field(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
