package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rahulmehta/sonictrace/pkg/logger"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace"
)

var (
	audioURL  string
	accessKey string
	secret    string
	tempDir   string
	acrHost   string
	acrRegion string
	timeout   int
)

func init() {
	flag.StringVar(&audioURL, "url", "", "URL of the audio file to identify (required)")
	flag.StringVar(&accessKey, "key", os.Getenv("ACR_ACCESS_KEY"), "ACRCloud access key")
	flag.StringVar(&secret, "secret", os.Getenv("ACR_ACCESS_SECRET"), "ACRCloud access secret")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("SONICTRACE_TEMP_DIR", "/tmp"), "Directory for scratch files")
	flag.StringVar(&acrHost, "host", getEnvOrDefault("SONICTRACE_ACR_HOST", sonictrace.DefaultHost), "ACRCloud identify host")
	flag.StringVar(&acrRegion, "region", getEnvOrDefault("SONICTRACE_ACR_REGION", sonictrace.DefaultRegion), "ACRCloud region selector")
	flag.IntVar(&timeout, "timeout", 300, "Overall timeout in seconds")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log := logger.GetLogger()
	flag.Parse()

	if audioURL == "" || accessKey == "" || secret == "" {
		fmt.Fprintln(os.Stderr, "usage: sonictrace -url <audio-url> -key <access-key> -secret <access-secret>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	service, err := sonictrace.NewService(
		sonictrace.WithTempDir(tempDir),
		sonictrace.WithHost(acrHost),
		sonictrace.WithRegion(acrRegion),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	result, err := service.Identify(ctx, sonictrace.Request{
		AudioURL:     audioURL,
		AccessKey:    accessKey,
		AccessSecret: secret,
	})
	if err != nil {
		log.Fatalf("Identification failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render result: %v", err)
	}
	fmt.Println(string(out))
}
