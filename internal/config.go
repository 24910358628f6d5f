package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/eotext/pkg/esperanto"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Conversion ConversionConfig  `yaml:"conversion"`
	Vocabulary VocabularyConfig  `yaml:"vocabulary"`
	SQLite     SQLiteConfig      `yaml:"sqlite"`
	Auth       AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Conversion.Validate(); err != nil {
		return err
	}
	if err := c.Vocabulary.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ConversionConfig controls how text is converted.
type ConversionConfig struct {
	// MatchMode selects how h-system words are compared with the vocabulary:
	// "fragment" (default), "prefix" or "exact".
	MatchMode string `yaml:"match_mode"`
	// CapsAwareSuffix writes "CX"/"CH" instead of "Cx"/"Ch" inside
	// all-capital words.
	CapsAwareSuffix bool `yaml:"caps_aware_suffix"`
	// ComposeMarks folds a base letter followed by U+0302 or U+0306 into the
	// precomposed letter before encoding. Off by default.
	ComposeMarks bool `yaml:"compose_marks"`
}

// Validate validates the conversion configuration.
func (c *ConversionConfig) Validate() error {
	if c.MatchMode == "" {
		c.MatchMode = string(esperanto.MatchFragment)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.MatchMode, validation.In(
			string(esperanto.MatchFragment),
			string(esperanto.MatchPrefix),
			string(esperanto.MatchExact),
		)),
	)
}

// Mode returns the parsed match mode.
func (c *ConversionConfig) Mode() esperanto.MatchMode {
	return esperanto.MatchMode(c.MatchMode)
}

// VocabularyConfig points at an optional YAML file with extra vocabulary
// entries, in the same layout as the embedded list.
type VocabularyConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the vocabulary configuration.
func (c *VocabularyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.When(c.Watch, validation.Required.Error("is required when watch is enabled"))),
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// SQLiteConfig holds the path of the user vocabulary database.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Conversion: ConversionConfig{
			MatchMode: string(esperanto.MatchFragment),
		},
		Vocabulary: VocabularyConfig{
			Debounce: 200 * time.Millisecond,
		},
		SQLite: SQLiteConfig{
			Path: "./eotext.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
