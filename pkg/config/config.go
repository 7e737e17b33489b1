package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fulmenhq/tonegen/pkg/format/finalizer"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TONEGEN_RENDER_ALIGN.
const EnvPrefix = "TONEGEN"

// FileNames are the config files looked up in the asset directory and then
// the working directory, in order.
var FileNames = []string{".tonegen.yaml", ".tonegen.yml", "tonegen.yaml"}

// Config holds all configuration for tonegen
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Output OutputConfig `mapstructure:"output"`
	Naming NamingConfig `mapstructure:"naming"`
	Render RenderConfig `mapstructure:"render"`

	// Source is the config file that was read, empty when only defaults and
	// environment applied.
	Source string `mapstructure:"-"`
}

// ScanConfig controls asset discovery
type ScanConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Exclude    []string `mapstructure:"exclude"`
	IgnoreFile string   `mapstructure:"ignore_file"`
}

// OutputConfig names the generated files. An empty Dir means the asset directory.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Header   string `mapstructure:"header"`
	FileList string `mapstructure:"file_list"`
}

// NamingConfig holds the C and build-system names written into artifacts
type NamingConfig struct {
	StructType     string `mapstructure:"struct_type"`
	Array          string `mapstructure:"array"`
	EnumType       string `mapstructure:"enum_type"`
	EnumPrefix     string `mapstructure:"enum_prefix"`
	Sentinel       string `mapstructure:"sentinel"`
	URLArray       string `mapstructure:"url_array"`
	URLScheme      string `mapstructure:"url_scheme"`
	LinkPrefix     string `mapstructure:"link_prefix"`
	LinkSuffix     string `mapstructure:"link_suffix"`
	CMakeDirective string `mapstructure:"cmake_directive"`
}

// SentinelLabel is the full name of the trailing enum constant.
func (n NamingConfig) SentinelLabel() string {
	return n.EnumPrefix + n.Sentinel
}

// RenderConfig controls text layout
type RenderConfig struct {
	LineEnding string `mapstructure:"line_ending"`
	Align      bool   `mapstructure:"align"`
	Copyright  string `mapstructure:"copyright"`
	License    string `mapstructure:"license"`
}

var defaultConfig = Config{
	Scan: ScanConfig{
		Extensions: []string{"wav", "mp3"},
		Exclude:    []string{},
		IgnoreFile: ".toneignore",
	},
	Output: OutputConfig{
		Dir:      "",
		Header:   "esp_embed_tone.h",
		FileList: "esp_embed_tone.cmake",
	},
	Naming: NamingConfig{
		StructType:     "esp_embed_tone_t",
		Array:          "g_esp_embed_tone",
		EnumType:       "esp_embed_tone_index",
		EnumPrefix:     "ESP_EMBED_TONE_",
		Sentinel:       "URL_MAX",
		URLArray:       "esp_embed_tone_url",
		URLScheme:      "embed://tone/",
		LinkPrefix:     "_binary_",
		LinkSuffix:     "_start",
		CMakeDirective: "COMPONENT_EMBED_TXTFILES",
	},
	Render: RenderConfig{
		LineEnding: "lf",
		Align:      false,
		Copyright:  "2025 Espressif Systems (Shanghai) CO., LTD",
		License:    "Apache-2.0",
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaultConfig
	c.Scan.Extensions = append([]string(nil), defaultConfig.Scan.Extensions...)
	c.Scan.Exclude = []string{}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.extensions", defaultConfig.Scan.Extensions)
	v.SetDefault("scan.exclude", defaultConfig.Scan.Exclude)
	v.SetDefault("scan.ignore_file", defaultConfig.Scan.IgnoreFile)

	v.SetDefault("output.dir", defaultConfig.Output.Dir)
	v.SetDefault("output.header", defaultConfig.Output.Header)
	v.SetDefault("output.file_list", defaultConfig.Output.FileList)

	v.SetDefault("naming.struct_type", defaultConfig.Naming.StructType)
	v.SetDefault("naming.array", defaultConfig.Naming.Array)
	v.SetDefault("naming.enum_type", defaultConfig.Naming.EnumType)
	v.SetDefault("naming.enum_prefix", defaultConfig.Naming.EnumPrefix)
	v.SetDefault("naming.sentinel", defaultConfig.Naming.Sentinel)
	v.SetDefault("naming.url_array", defaultConfig.Naming.URLArray)
	v.SetDefault("naming.url_scheme", defaultConfig.Naming.URLScheme)
	v.SetDefault("naming.link_prefix", defaultConfig.Naming.LinkPrefix)
	v.SetDefault("naming.link_suffix", defaultConfig.Naming.LinkSuffix)
	v.SetDefault("naming.cmake_directive", defaultConfig.Naming.CMakeDirective)

	v.SetDefault("render.line_ending", defaultConfig.Render.LineEnding)
	v.SetDefault("render.align", defaultConfig.Render.Align)
	v.SetDefault("render.copyright", defaultConfig.Render.Copyright)
	v.SetDefault("render.license", defaultConfig.Render.License)
}

// Load resolves configuration for an asset directory. Precedence, lowest
// first: built-in defaults, the config file, TONEGEN_* environment
// variables. explicitFile, when set, must exist; otherwise FileNames are
// searched in assetDir and then the working directory.
func Load(assetDir, explicitFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := findConfigFile(assetDir, explicitFile)
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-selected config file
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := ValidateFile(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %v", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(assetDir, explicitFile string) (string, error) {
	if explicitFile != "" {
		if _, err := os.Stat(explicitFile); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicitFile, nil
	}

	dirs := []string{}
	if assetDir != "" {
		dirs = append(dirs, assetDir)
	}
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if st, err := os.Stat(candidate); err == nil && st.Mode().IsRegular() {
				return candidate, nil
			}
		}
	}
	return "", nil
}

// Validate checks values the schema cannot express or that came from the
// environment.
func (c *Config) Validate() error {
	var problems []string

	if _, err := finalizer.ParseLineEnding(c.Render.LineEnding); err != nil {
		problems = append(problems, fmt.Sprintf("render.line_ending: %v", err))
	}
	if len(c.Scan.Extensions) == 0 {
		problems = append(problems, "scan.extensions: at least one extension is required")
	}
	for key, name := range map[string]string{
		"output.header":    c.Output.Header,
		"output.file_list": c.Output.FileList,
	} {
		if name == "" || strings.ContainsAny(name, `/\`) {
			problems = append(problems, fmt.Sprintf("%s: must be a plain file name, got %q", key, name))
		}
	}
	if c.Output.Header == c.Output.FileList {
		problems = append(problems, "output.header and output.file_list must differ")
	}
	if strings.ContainsAny(c.Scan.IgnoreFile, `/\`) {
		problems = append(problems, fmt.Sprintf("scan.ignore_file: must be a plain file name, got %q", c.Scan.IgnoreFile))
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

// OutputDir returns where artifacts are written for assetDir.
func (c *Config) OutputDir(assetDir string) string {
	if c.Output.Dir == "" {
		return assetDir
	}
	if filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}
	return filepath.Join(assetDir, c.Output.Dir)
}

// LineEnding returns the parsed render.line_ending. Validate has already
// rejected unsupported values.
func (c *Config) LineEnding() finalizer.LineEnding {
	le, err := finalizer.ParseLineEnding(c.Render.LineEnding)
	if err != nil {
		return finalizer.LF
	}
	return le
}

// ValidationError lists every invalid configuration value.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "configuration validation failed:\n" + strings.Join(e.Problems, "\n")
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
