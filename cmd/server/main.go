package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rahulmehta/sonictrace/pkg/sonictrace"
)

var (
	port            int
	tempDir         string
	acrHost         string
	acrRegion       string
	allowedOrigins  string
	configPath      string
	downloadTimeout int
	uploadTimeout   int
)

func init() {
	flag.IntVar(&port, "port", 10000, "HTTP server port")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("SONICTRACE_TEMP_DIR", "/tmp"), "Directory for per-request scratch files")
	flag.StringVar(&acrHost, "host", getEnvOrDefault("SONICTRACE_ACR_HOST", sonictrace.DefaultHost), "ACRCloud identify host")
	flag.StringVar(&acrRegion, "region", getEnvOrDefault("SONICTRACE_ACR_REGION", sonictrace.DefaultRegion), "ACRCloud region selector")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
	flag.StringVar(&configPath, "config", os.Getenv("SONICTRACE_CONFIG"), "Optional TOML config file")
	flag.IntVar(&downloadTimeout, "download-timeout", 120, "Download timeout in seconds")
	flag.IntVar(&uploadTimeout, "upload-timeout", 30, "Upload timeout in seconds")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// flagWasSet reports whether the user passed a flag explicitly, so a config
// file value does not clobber it.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	flag.Parse()

	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		origins = strings.Split(allowedOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	if configPath != "" {
		fileCfg, err := loadFileConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if fileCfg.Port != 0 && !flagWasSet("port") {
			port = fileCfg.Port
		}
		if fileCfg.TempDir != "" && !flagWasSet("temp") {
			tempDir = fileCfg.TempDir
		}
		if fileCfg.ACRHost != "" && !flagWasSet("host") {
			acrHost = fileCfg.ACRHost
		}
		if fileCfg.ACRRegion != "" && !flagWasSet("region") {
			acrRegion = fileCfg.ACRRegion
		}
		if len(fileCfg.AllowedOrigins) > 0 && !flagWasSet("origins") {
			origins = fileCfg.AllowedOrigins
		}
		if fileCfg.DownloadTimeoutSec != 0 && !flagWasSet("download-timeout") {
			downloadTimeout = fileCfg.DownloadTimeoutSec
		}
		if fileCfg.UploadTimeoutSec != 0 && !flagWasSet("upload-timeout") {
			uploadTimeout = fileCfg.UploadTimeoutSec
		}
	}

	service, err := sonictrace.NewService(
		sonictrace.WithTempDir(tempDir),
		sonictrace.WithHost(acrHost),
		sonictrace.WithRegion(acrRegion),
		sonictrace.WithDownloadTimeout(time.Duration(downloadTimeout)*time.Second),
		sonictrace.WithUploadTimeout(time.Duration(uploadTimeout)*time.Second),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	config := &ServerConfig{
		Port:           port,
		TempDir:        tempDir,
		Host:           acrHost,
		Region:         acrRegion,
		AllowedOrigins: origins,
	}

	server := NewServer(service, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
