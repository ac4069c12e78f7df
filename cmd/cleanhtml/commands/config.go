package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleanhtml/pkg/cleanhtml"
)

// cleanConfig is the merged flag, environment and config file settings for
// the clean command.
type cleanConfig struct {
	Format       string        `mapstructure:"format" validate:"oneof=html markdown"`
	Report       string        `mapstructure:"report"`
	ReportFormat string        `mapstructure:"report_format" validate:"oneof=json yaml"`
	Output       string        `mapstructure:"output"`
	Extract      bool          `mapstructure:"extract"`
	Autop        bool          `mapstructure:"autop"`
	Pretty       bool          `mapstructure:"pretty"`
	Quotes       bool          `mapstructure:"quotes"`
	Stats        bool          `mapstructure:"stats"`
	MaxSize      string        `mapstructure:"max_size"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent    string        `mapstructure:"user_agent"`

	// Parsed from MaxSize; 0 means unlimited.
	maxBytes int
}

var validate = validator.New()

// loadCleanConfig reads the clean settings from viper and validates them.
func loadCleanConfig() (*cleanConfig, error) {
	cfg := &cleanConfig{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.ReportFormat = strings.ToLower(cfg.ReportFormat)

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s %s", strings.ToLower(e.Field()), formatValidationError(e)))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return nil, err
	}

	if s := strings.TrimSpace(cfg.MaxSize); s != "" && s != "0" {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return nil, fmt.Errorf("invalid max-size %q: %w", cfg.MaxSize, err)
		}
		cfg.maxBytes = int(n)
	}

	return cfg, nil
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(e.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

// loadOptions merges the "options" section of the config file with the
// option flags set on cmd. Flags win. Unknown keys in the config file are
// rejected.
func loadOptions(cmd *cobra.Command) (cleanhtml.Options, error) {
	values := make(map[string]bool)
	for key, raw := range viper.GetStringMap("options") {
		b, ok := raw.(bool)
		if !ok {
			return cleanhtml.Options{}, fmt.Errorf("option %s: expected boolean, got %T", key, raw)
		}
		values[key] = b
	}

	for _, key := range cleanhtml.Keys() {
		if cmd.Flags().Changed(key) {
			values[key], _ = cmd.Flags().GetBool(key)
		}
	}

	return cleanhtml.ParseOptions(values)
}
