package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		Secret          string   `yaml:"secret"`
		PreviousSecrets []string `yaml:"previous_secrets"`
		TokenTTLHours   int      `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Server struct {
		Port     string `yaml:"port"`
		ImageDir string `yaml:"image_dir"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file. Secrets may
// be overridden from the environment (DATABASE_URL, JWT_SECRET) so the YAML
// file never has to carry production values.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.Database.URL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.Secret = secret
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret is not set")
	}
	if config.Auth.TokenTTLHours <= 0 {
		config.Auth.TokenTTLHours = 24
	}

	return config, nil
}

// PreviousSecretBytes returns the rotation grace list as byte slices.
func (c *Config) PreviousSecretBytes() [][]byte {
	secrets := make([][]byte, 0, len(c.Auth.PreviousSecrets))
	for _, s := range c.Auth.PreviousSecrets {
		if s != "" {
			secrets = append(secrets, []byte(s))
		}
	}
	return secrets
}
