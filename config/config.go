package config

// Config represents the complete sauce configuration
type Config struct {
	Shell   ShellConfig   `yaml:"shell"`
	Logging LoggingConfig `yaml:"logging"`
}

// ShellConfig holds settings for the interactive shell and document loading
type ShellConfig struct {
	Prompt    string `yaml:"prompt"`    // Prompt prefix, the current path is appended (default: "sauce")
	History   string `yaml:"history"`   // History file, empty disables history (default: ~/.sauce_history)
	Format    string `yaml:"format"`    // Input format: json, yaml or auto (default: "auto")
	Output    string `yaml:"output"`    // Result format: json or yaml (default: "json")
	Recursive bool   `yaml:"recursive"` // Wrap nested arrays into Objects when loading
	ReadOnly  bool   `yaml:"readonly"`  // Load documents as ImmutableObjects
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Defaults returns a Config with sensible default values
func Defaults() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt:  "sauce",
			History: "~/.sauce_history",
			Format:  "auto",
			Output:  "json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
