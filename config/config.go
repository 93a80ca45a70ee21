package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	Port    string `json:"port"`
	Journal string `json:"journal"` // sqlite DSN for the tick journal
	Width   uint8  `json:"width"`
	Height  uint8  `json:"height"`
	Speed   uint8  `json:"speed"`
	Length  uint8  `json:"length"`
	Growth  bool   `json:"growth"`
}

var (
	instance *AppConfig
	mu       sync.RWMutex
)

// Defaults returns the values written to a fresh config file.
func Defaults() AppConfig {
	return AppConfig{
		Port:    "38870",
		Journal: "game.db",
		Width:   17,
		Height:  15,
		Speed:   10,
		Length:  3,
	}
}

// LoadConfig reads filePath into the shared instance, creating the file
// with defaults if it does not exist.
func LoadConfig(filePath string) (*AppConfig, error) {
	cfg := Defaults()
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if err := saveConfig(filePath, &cfg); err != nil {
			return nil, err
		}
	} else if err := loadConfig(filePath, &cfg); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// loadConfig loads the settings from the file
func loadConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return nil
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Get returns a copy of the current configuration, or Defaults if nothing was loaded.
func Get() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return Defaults()
	}
	return *instance
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	cfg := Get()
	switch key {
	case "port":
		return cfg.Port
	case "journal":
		return cfg.Journal
	case "width":
		return cfg.Width
	case "height":
		return cfg.Height
	case "speed":
		return cfg.Speed
	case "length":
		return cfg.Length
	case "growth":
		return cfg.Growth
	default:
		return ""
	}
}
