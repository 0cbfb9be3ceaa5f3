package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig is the optional TOML config file. Flags override anything set
// here; the file overrides built-in defaults.
type FileConfig struct {
	Port               int      `toml:"port"`
	TempDir            string   `toml:"temp_dir"`
	ACRHost            string   `toml:"acr_host"`
	ACRRegion          string   `toml:"acr_region"`
	AllowedOrigins     []string `toml:"allowed_origins"`
	DownloadTimeoutSec int      `toml:"download_timeout_sec"`
	UploadTimeoutSec   int      `toml:"upload_timeout_sec"`
}

func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}
