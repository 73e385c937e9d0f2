package types

import "errors"

// Config holds the settings the stockroom CLI reads from config.yaml.
// The core packages never read it; the CLI translates it into options.
type Config struct {
	LogDir   string `json:"log_dir" yaml:"log_dir"`
	LogLevel string `json:"log_level" yaml:"log_level"`
	OnError  string `json:"on_error" yaml:"on_error"`
}

// Error policies for scenario files.
const (
	OnErrorAbort    = "abort"
	OnErrorContinue = "continue"
)

// Defaults applied when config.yaml omits a key.
const (
	DefaultLogDir   = "logs"
	DefaultLogLevel = "info"
	DefaultOnError  = OnErrorAbort
)

// Config validation errors.
var (
	ErrLogLevelUnknown = errors.New("unknown log level")
	ErrOnErrorUnknown  = errors.New("unknown on_error policy")
)

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var knownOnError = map[string]bool{
	OnErrorAbort:    true,
	OnErrorContinue: true,
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() Config {
	return Config{
		LogDir:   DefaultLogDir,
		LogLevel: DefaultLogLevel,
		OnError:  DefaultOnError,
	}
}

// Validate checks that the Config is well-formed. Empty values are valid and
// mean "use the default".
func (c Config) Validate() error {
	if c.LogLevel != "" && !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	if c.OnError != "" && !knownOnError[c.OnError] {
		return ErrOnErrorUnknown
	}
	return nil
}

// ContinueOnError reports whether scenario line failures should be skipped.
func (c Config) ContinueOnError() bool {
	return c.OnError == OnErrorContinue
}
