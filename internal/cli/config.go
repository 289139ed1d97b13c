package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration
type Config struct {
	DefaultProfile string                   `yaml:"default_profile"`
	Profiles       map[string]ProfileConfig `yaml:"profiles"`
}

// ProfileConfig represents configuration for a specific deployment
type ProfileConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".priceflow", "config.yaml"), nil
}

// LoadConfig loads the configuration from file
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{
				DefaultProfile: "prod",
				Profiles:       make(map[string]ProfileConfig),
			}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to file
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetProfileConfig returns configuration for a deployment profile.
// Priority: command flags > environment variables > config file.
// Returns the profile config and the effective profile name.
func GetProfileConfig(profileName, baseURLFlag, apiKeyFlag string) (*ProfileConfig, string, error) {
	if baseURLFlag != "" {
		if profileName == "" {
			profileName = "adhoc"
		}
		return &ProfileConfig{
			BaseURL: baseURLFlag,
			APIKey:  apiKeyFlag,
		}, profileName, nil
	}

	envBaseURL := os.Getenv("PRICEFLOW_BASE_URL")
	envAPIKey := os.Getenv("PRICEFLOW_API_KEY")
	if envBaseURL != "" {
		if profileName == "" {
			profileName = "env"
		}
		return &ProfileConfig{
			BaseURL: envBaseURL,
			APIKey:  envAPIKey,
		}, profileName, nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, "", err
	}

	if profileName == "" {
		profileName = cfg.DefaultProfile
	}

	profile, ok := cfg.Profiles[profileName]
	if !ok {
		return nil, "", fmt.Errorf("profile '%s' not found in config (run 'priceflow config init')", profileName)
	}

	if apiKeyFlag != "" {
		profile.APIKey = apiKeyFlag
	} else if envAPIKey != "" {
		profile.APIKey = envAPIKey
	}

	if profile.BaseURL == "" {
		return nil, "", fmt.Errorf("base_url must be configured for profile '%s'", profileName)
	}

	return &profile, profileName, nil
}

// InitConfig creates a default config file
func InitConfig() error {
	cfg := &Config{
		DefaultProfile: "prod",
		Profiles: map[string]ProfileConfig{
			"dev": {
				BaseURL: "http://localhost:8080",
				APIKey:  "admin-123",
			},
			"staging": {
				BaseURL: "https://pricing-staging.example.com",
				APIKey:  "staging-key-456",
			},
			"prod": {
				BaseURL: "https://pricing.example.com",
				APIKey:  "prod-key-789",
			},
		},
	}

	return SaveConfig(cfg)
}
