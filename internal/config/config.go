package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/widget"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "lu.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "lu.yaml"

	// DefaultPage is the default page rendered by lu.
	DefaultPage = "index.html"

	// DefaultPort is the default development server port.
	DefaultPort = 4000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default render output directory.
	DefaultOutput = "dist"
)

// configFiles are looked up in order.
var configFiles = []string{ConfigFileName, YAMLConfigFileName, "lu.yml"}

// Config represents the complete lu.json configuration.
type Config struct {
	// Page is the HTML page to bind, relative to the config file.
	Page string `json:"page,omitempty" yaml:"page,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Output contains render destinations.
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`

	// Widgets contains widget runtime configuration.
	Widgets WidgetsConfig `json:"widgets,omitempty" yaml:"widgets,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Watch contains paths to watch for changes. The page is always
	// watched.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`
}

// OutputConfig contains render destinations.
type OutputConfig struct {
	// Dir is the directory rendered pages are written to.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// S3 publishes rendered pages to a bucket when Bucket is set.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config names an S3 destination.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// WidgetsConfig contains widget runtime settings.
type WidgetsConfig struct {
	// ARIA enables observer discovery from ARIA relationship attributes.
	// Nil means enabled.
	ARIA *bool `json:"aria,omitempty" yaml:"aria,omitempty"`

	// Trigger is the local trigger mode: "dispatch" or "oneshot".
	Trigger string `json:"trigger,omitempty" yaml:"trigger,omitempty"`

	// Touch makes the Button map activate on touchstart instead of click.
	Touch bool `json:"touch,omitempty" yaml:"touch,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	aria := true
	return &Config{
		Page: DefaultPage,
		Dev: DevConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Output: OutputConfig{
			Dir: DefaultOutput,
		},
		Widgets: WidgetsConfig{
			ARIA:    &aria,
			Trigger: widget.TriggerDispatch.String(),
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for lu.json, then lu.yaml, in the directory.
func Load(dir string) (*Config, error) {
	for _, name := range configFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("L081").
		WithDetail("No lu.json or lu.yaml found in " + dir).
		WithSuggestion("Create lu.json next to your page, or pass the page to 'lu render' directly")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("L081").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("L080").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("L080").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("L080").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML when the
// path ends in .yaml or .yml.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("L080").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("L080").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Page == "" {
		c.Page = DefaultPage
	}

	// Dev
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}

	// Output
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutput
	}
	c.Output.S3.Prefix = strings.TrimLeft(c.Output.S3.Prefix, "/")

	// Widgets
	if c.Widgets.ARIA == nil {
		aria := true
		c.Widgets.ARIA = &aria
	}
	if c.Widgets.Trigger == "" {
		c.Widgets.Trigger = widget.TriggerDispatch.String()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("L080").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := widget.ParseTriggerMode(c.Widgets.Trigger); err != nil {
		return errors.New("L080").
			WithDetail(err.Error()).
			WithSuggestion(`Use "dispatch" or "oneshot"`)
	}
	if c.Output.S3.Region != "" && c.Output.S3.Bucket == "" {
		return errors.New("L080").
			WithDetail("output.s3.region is set but output.s3.bucket is empty")
	}
	return nil
}

// TriggerMode returns the parsed widgets.trigger setting.
func (c *Config) TriggerMode() widget.TriggerMode {
	mode, _ := widget.ParseTriggerMode(c.Widgets.Trigger)
	return mode
}

// ARIA reports whether ARIA observer discovery is enabled.
func (c *Config) ARIA() bool {
	return c.Widgets.ARIA == nil || *c.Widgets.ARIA
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// resolve makes path absolute relative to the config directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// PagePath returns the absolute path to the page.
func (c *Config) PagePath() string {
	return c.resolve(c.Page)
}

// OutputPath returns the absolute path to the output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Output.Dir)
}

// WatchPaths returns the absolute paths watched by the dev server, the
// page first.
func (c *Config) WatchPaths() []string {
	paths := []string{c.PagePath()}
	for _, p := range c.Dev.Watch {
		abs := c.resolve(p)
		if abs != paths[0] {
			paths = append(paths, abs)
		}
	}
	return paths
}

// HasS3 reports whether rendered pages are published to S3.
func (c *Config) HasS3() bool {
	return c.Output.S3.Bucket != ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range configFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing lu.json or lu.yaml, or an error if not
// found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("L081").
				WithDetail("No lu.json or lu.yaml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
