package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjy-dev/cobertura/internal/coverage"
)

// EnvPrefix prefixes environment overrides, e.g. COBERTURA_REPORT_OUTPUT_DIR.
const EnvPrefix = "COBERTURA"

// Config is the top-level configuration.
type Config struct {
	Report ReportConfig `mapstructure:"report"`
	Log    LogConfig    `mapstructure:"log"`
}

// ReportConfig describes where coverage comes from and where the report goes.
type ReportConfig struct {
	// ProjectRoot is the directory reported files are relative to.
	ProjectRoot string `mapstructure:"project_root"`

	// OutputDir receives coverage.xml. Relative paths resolve against ProjectRoot.
	OutputDir string `mapstructure:"output_dir"`

	// Input is the coverage data file. When empty it defaults to the
	// collector's usual file inside OutputDir.
	Input string `mapstructure:"input"`

	// Format is "simplecov" or "gcovr".
	Format string `mapstructure:"format"`

	// CommandName selects (simplecov) or names (gcovr) the test command.
	CommandName string `mapstructure:"command_name"`

	Groups []coverage.GroupRule `mapstructure:"groups"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads a configuration file from the "configs" directory into a struct.
// The configName parameter should be the base name of the file without the extension (e.g., "config").
// The result parameter should be a pointer to a struct that the configuration will be unmarshaled into.
// Defaults and COBERTURA_* environment overrides apply on top of the file.
func Load(configName string, result interface{}) error {
	v := newViper()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	addSearchPaths(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return unmarshal(v, result)
}

// LoadConfig loads configs/config.yaml when present and applies defaults
// and COBERTURA_* environment overrides. Paths are left as written; call
// Resolve once flag overrides are applied.
func LoadConfig() (*Config, error) {
	var cfg Config
	err := Load("config", &cfg)

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = unmarshal(newViper(), &cfg)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads the configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve makes ProjectRoot absolute, resolves OutputDir and Input against
// it, and fills the default input for the configured format.
func (c *Config) Resolve() error {
	format, err := coverage.ParseFormat(c.Report.Format)
	if err != nil {
		return err
	}
	c.Report.Format = string(format)

	root, err := filepath.Abs(c.Report.ProjectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	c.Report.ProjectRoot = root
	c.Report.OutputDir = resolvePath(root, c.Report.OutputDir)

	if c.Report.Input == "" {
		c.Report.Input = filepath.Join(c.Report.OutputDir, DefaultInputName(format))
	} else {
		c.Report.Input = resolvePath(root, c.Report.Input)
	}
	return nil
}

// DefaultInputName is the file each collector writes by default.
func DefaultInputName(format coverage.Format) string {
	if format == coverage.FormatGcovr {
		return "coverage.json"
	}
	return ".resultset.json"
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("report.project_root", ".")
	v.SetDefault("report.output_dir", "coverage")
	v.SetDefault("report.input", "")
	v.SetDefault("report.format", string(coverage.FormatSimpleCov))
	v.SetDefault("report.command_name", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func addSearchPaths(v *viper.Viper) {
	v.AddConfigPath("configs")       // configs under the working directory
	v.AddConfigPath("../configs")    // package directories under go test
	v.AddConfigPath("../../configs") // deeper packages
}

func unmarshal(v *viper.Viper, result interface{}) error {
	if err := v.Unmarshal(result); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	return nil
}

func resolvePath(root, p string) string {
	if p == "" {
		return root
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
