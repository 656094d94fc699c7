package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docstack/swagger2insomnia/internal/insomnia"
	genspec "github.com/docstack/swagger2insomnia/internal/spec"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input      string
	Out        string
	Name       string
	EnvName    string
	Host       string
	APIKey     string
	Color      string
	ConfigPath string
	Verbose    bool
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an Insomnia collection from a Swagger 2.0 document",
		Long: "Generate an Insomnia 5.0 collection YAML from a Swagger 2.0 JSON document. " +
			"Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  swagger2insomnia generate --input api.json > collection.yaml
  swagger2insomnia --config config.yaml generate --out collection.yaml`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path to the Swagger 2.0 JSON document")
	flags.String("out", "", "Output file (stdout when omitted)")
	flags.String("name", "", "Collection name (derived from the document when omitted)")
	flags.String("env-name", "", "Sub-environment name")
	flags.String("host", "", "Sub-environment host (document host when omitted)")
	flags.String("api-key", "", "Sub-environment credential placeholder value")
	flags.String("color", "", "Sub-environment display color")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := GenerateConfig{}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("verbose") || cmd.InheritedFlags().Changed("verbose") {
		value, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return nil, err
		}
		cfg.Verbose = value
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	stringFields := []struct {
		name string
		dst  *string
	}{
		{"input", &cfg.Input},
		{"out", &cfg.Out},
		{"name", &cfg.Name},
		{"env-name", &cfg.EnvName},
		{"host", &cfg.Host},
		{"api-key", &cfg.APIKey},
		{"color", &cfg.Color},
	}
	for _, f := range stringFields {
		if !flags.Changed(f.name) {
			continue
		}
		value, err := flags.GetString(f.name)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(value)
	}
	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Name = strings.TrimSpace(c.Name)
	c.EnvName = strings.TrimSpace(c.EnvName)
	c.Host = strings.TrimSpace(c.Host)
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Color = strings.TrimSpace(c.Color)
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	doc, err := genspec.Load(cfg.Input)
	if err != nil {
		var se *genspec.SpecError
		if errors.As(err, &se) {
			msg := se.Message
			if se.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, se.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	text := insomnia.Generate(doc, insomnia.Options{
		Name:    cfg.Name,
		EnvName: cfg.EnvName,
		Host:    cfg.Host,
		APIKey:  cfg.APIKey,
		Color:   cfg.Color,
	})

	if cfg.Out == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}

	abs, err := filepath.Abs(cfg.Out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// atomic write via temp file + rename
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", cfg.Out, err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", cfg.Out, err)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(text), abs)
	}
	return nil
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageErrorf("read config file %q: %v", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageErrorf("parse config file %q: %v", path, err)
	}

	for key, value := range raw {
		switch normalizeKey(key) {
		case "input":
			if err := setStringField(&cfg.Input, key, value); err != nil {
				return err
			}
		case "out":
			if err := setStringField(&cfg.Out, key, value); err != nil {
				return err
			}
		case "name":
			if err := setStringField(&cfg.Name, key, value); err != nil {
				return err
			}
		case "envname":
			if err := setStringField(&cfg.EnvName, key, value); err != nil {
				return err
			}
		case "host":
			if err := setStringField(&cfg.Host, key, value); err != nil {
				return err
			}
		case "apikey":
			if err := setStringField(&cfg.APIKey, key, value); err != nil {
				return err
			}
		case "color":
			if err := setStringField(&cfg.Color, key, value); err != nil {
				return err
			}
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageErrorf("config field %q: %v", key, err)
			}
			cfg.Verbose = val
		default:
			return newUsageErrorf("config file %q: unknown field %q", path, key)
		}
	}

	return nil
}

func setStringField(dst *string, key string, value any) error {
	str, err := valueAsString(value)
	if err != nil {
		return newUsageErrorf("config field %q: %v", key, err)
	}
	*dst = str
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
