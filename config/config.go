package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	APIBaseURL        string `json:"apiBaseURL"`
	ListenAddr        string `json:"listenAddr"`
	RequestTimeoutSec int    `json:"requestTimeoutSec"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./posdesk_config.json"

const (
	defaultAPIBaseURL        = "https://api2.nextorbitals.in/api"
	defaultListenAddr        = ":8080"
	defaultRequestTimeoutSec = 30
)

func applyDefaults(c *Config) {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.RequestTimeoutSec <= 0 {
		c.RequestTimeoutSec = defaultRequestTimeoutSec
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		applyDefaults(&cfg)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		applyDefaults(&cfg)
		return cfg, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
