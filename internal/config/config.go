package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeServe   = "serve"
	ModeExtract = "extract"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
	DefaultUploadsDir  = "uploads"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the ticketer service
type Config struct {
	// Server configuration
	Mode string // "serve" or "extract"
	Host string
	Port int

	// Storage configuration
	UploadDirectory string

	// Extraction configuration
	KeywordsPath string // optional JSON keyword-table overrides
	MaxFileSize  int64  // Maximum PDF file size in bytes

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:            ModeServe,
		Host:            DefaultHost,
		Port:            DefaultPort,
		UploadDirectory: DefaultUploadsDir,
		KeywordsPath:    "",
		MaxFileSize:     DefaultMaxFileSize,
		Version:         "1.0.0",
		LogLevel:        DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.UploadDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.UploadDirectory); err == nil {
			cfg.UploadDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TICKETER")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("uploads", cfg.UploadDirectory)
	viper.SetDefault("keywords", cfg.KeywordsPath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'serve' for the upload API, 'extract' for one-shot extraction")
	pflag.String("host", cfg.Host, "Server host address (serve mode only)")
	pflag.Int("port", cfg.Port, "Server port (serve mode only)")
	pflag.String("uploads", cfg.UploadDirectory, "Directory for stored invoice PDFs")
	pflag.String("keywords", cfg.KeywordsPath, "Optional JSON file overriding the keyword tables")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("uploads", pflag.Lookup("uploads"))
	_ = viper.BindPFlag("keywords", pflag.Lookup("keywords"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nticketer - invoice field extraction for repair tickets\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --mode=extract invoice.pdf            # print fields as JSON\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=serve --uploads=/data/uploads  # run the upload API\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=serve --host=0.0.0.0 --port=8081\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_UPLOADS      Upload directory\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_KEYWORDS     Keyword overrides file\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  TICKETER_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.UploadDirectory = viper.GetString("uploads")
	cfg.KeywordsPath = viper.GetString("keywords")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeServe && c.Mode != ModeExtract {
		return errors.New("mode must be either 'serve' or 'extract'")
	}

	if c.Mode == ModeServe {
		if c.Port < 1 || c.Port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}

		if c.UploadDirectory == "" {
			return errors.New("upload directory cannot be empty")
		}

		// Create the upload directory if it does not exist yet
		if _, err := os.Stat(c.UploadDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(c.UploadDirectory, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create upload directory %s: %w", c.UploadDirectory, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access upload directory %s: %w", c.UploadDirectory, err)
		}
	}

	if c.KeywordsPath != "" {
		if _, err := os.Stat(c.KeywordsPath); err != nil {
			return fmt.Errorf("cannot access keywords file %s: %w", c.KeywordsPath, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, UploadDirectory: %s, KeywordsPath: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.UploadDirectory, c.KeywordsPath, c.LogLevel, c.MaxFileSize)
}

// IsServeMode returns true when running the upload API
func (c *Config) IsServeMode() bool {
	return c.Mode == ModeServe
}

// IsExtractMode returns true when running a one-shot extraction
func (c *Config) IsExtractMode() bool {
	return c.Mode == ModeExtract
}
