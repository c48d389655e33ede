// Package config handles agent configuration loading and saving.
// Configuration is stored in JSON format with restricted permissions (0600).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const (
	configFileName = "computer-agent.json"
	configFileMode = 0600
	configDirMode  = 0755

	// DefaultListenAddr is where the WebSocket surface binds.
	DefaultListenAddr = "0.0.0.0:8000"

	// DefaultMaxTreeDepth bounds accessibility walks when the caller does
	// not pass an explicit depth. Platform trees can be pathologically deep;
	// unlimited walks are opt-in per request.
	DefaultMaxTreeDepth = 25

	// DefaultCommandTimeout bounds run_command executions.
	DefaultCommandTimeout = 60 * time.Second
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the agent configuration.
type Config struct {
	ListenAddr     string `json:"listen_addr"`
	MaxTreeDepth   int    `json:"max_tree_depth"`
	CommandTimeout int    `json:"command_timeout_seconds"`
	Debug          bool   `json:"debug"`

	mu       sync.RWMutex
	filePath string
}

// Paths holds the directories used by the agent.
type Paths struct {
	BaseDir    string
	ConfigFile string
	LogDir     string
}

// DefaultPaths returns the platform-appropriate agent paths.
func DefaultPaths() Paths {
	var base, logs string
	switch runtime.GOOS {
	case "darwin":
		base = "/Library/Application Support/ComputerAgent"
		logs = "/Library/Logs/ComputerAgent"
	case "windows":
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		base = filepath.Join(programData, "ComputerAgent")
		logs = filepath.Join(base, "logs")
	default:
		base = "/var/lib/computer-agent"
		logs = "/var/log/computer-agent"
	}
	return Paths{
		BaseDir:    base,
		ConfigFile: filepath.Join(base, configFileName),
		LogDir:     logs,
	}
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		ListenAddr:     DefaultListenAddr,
		MaxTreeDepth:   DefaultMaxTreeDepth,
		CommandTimeout: int(DefaultCommandTimeout / time.Second),
	}
}

// Load reads the configuration file. A missing file is not an error: the
// defaults are returned, bound to the same path for a later Save.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.MaxTreeDepth <= 0 {
		c.MaxTreeDepth = DefaultMaxTreeDepth
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = int(DefaultCommandTimeout / time.Second)
	}
}

// Save writes the configuration to its file with restricted permissions.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return fmt.Errorf("%w: no file path", ErrInvalidConfig)
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), configDirMode); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(c.filePath, data, configFileMode); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetListenAddr returns the WebSocket bind address.
func (c *Config) GetListenAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ListenAddr
}

// GetMaxTreeDepth returns the default accessibility walk depth.
func (c *Config) GetMaxTreeDepth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MaxTreeDepth
}

// GetCommandTimeout returns the run_command timeout.
func (c *Config) GetCommandTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.CommandTimeout) * time.Second
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Debug
}
