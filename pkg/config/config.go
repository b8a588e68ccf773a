// Package config loads the pilot configuration: built-in defaults, then an optional YAML file,
// then environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/einherij/tellosdk/pkg/controller"
	"github.com/einherij/tellosdk/pkg/drone"
	"github.com/einherij/tellosdk/pkg/logging"
	"github.com/einherij/tellosdk/pkg/schema"
)

type Config struct {
	Drone      drone.Config      `yaml:"drone"`
	Controller controller.Config `yaml:"controller"`
	Log        logging.Config    `yaml:"log"`

	// HandlerURL is the http(s) base URL of the handler host the relay connects to. Empty
	// disables the relay.
	HandlerURL string `yaml:"handlerUrl"`
	// SchemaFile replaces the embedded command schema when set.
	SchemaFile string `yaml:"schemaFile"`
	// StateBuffer is the capacity of the state stream feeding the navigator.
	StateBuffer int `yaml:"stateBuffer"`
}

func Default() Config {
	return Config{
		Drone:       drone.DefaultConfig(),
		Controller:  controller.DefaultConfig(),
		Log:         logging.DefaultConfig(),
		StateBuffer: 100,
	}
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("error loading config file: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("error validating config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv("TELLO_HOST"); host != "" {
		cfg.Drone.Host = host
	}
	if file := os.Getenv("TELLO_SCHEMA"); file != "" {
		cfg.SchemaFile = file
	}
	if url := os.Getenv("HANDLER_HOST_URL"); url != "" {
		cfg.HandlerURL = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if timeout := os.Getenv("TELLO_ACK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Drone.AckTimeout = d
		}
	}
	if skip := os.Getenv("TELLO_SKIP_OK"); skip != "" {
		if b, err := strconv.ParseBool(skip); err == nil {
			cfg.Drone.SkipOK = b
		}
	}
}

func (c Config) Validate() error {
	if c.Drone.Host == "" {
		return fmt.Errorf("drone host is empty")
	}
	for name, port := range map[string]int{"control": c.Drone.ControlPort, "state": c.Drone.StatePort} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("%s port %d out of range", name, port)
		}
	}
	if c.Drone.ControlPort == c.Drone.StatePort {
		return fmt.Errorf("control and state ports are both %d", c.Drone.ControlPort)
	}
	if c.Drone.AckTimeout <= 0 {
		return fmt.Errorf("ack timeout must be positive, got %s", c.Drone.AckTimeout)
	}
	if c.StateBuffer <= 0 {
		return fmt.Errorf("state buffer must be positive, got %d", c.StateBuffer)
	}
	if err := c.Controller.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// Schema returns the configured command schema.
func (c Config) Schema() (*schema.Schema, error) {
	if c.SchemaFile == "" {
		return schema.Default(), nil
	}
	return schema.Load(c.SchemaFile)
}
