package sonictrace

import (
	"net/http"
	"time"
)

// DefaultHost and DefaultRegion pin the upstream the original deployment
// talked to. Both are injected configuration so tests and other deployments
// can point elsewhere.
const (
	DefaultHost   = "identify-ap-southeast-1.acrcloud.com"
	DefaultRegion = "IN"
)

type Config struct {
	TempDir         string
	Host            string
	Region          string
	DownloadTimeout time.Duration
	UploadTimeout   time.Duration
	HTTPClient      *http.Client
	Logger          Logger
	Fetcher         Fetcher
	Transcoder      Transcoder
	Upstream        Upstream
}

type Option func(*Config)

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

func WithHost(host string) Option {
	return func(c *Config) {
		c.Host = host
	}
}

func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

func WithDownloadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.DownloadTimeout = d
	}
}

func WithUploadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.UploadTimeout = d
	}
}

// WithHTTPClient overrides the client used for both the download and the
// upload leg; the per-leg timeouts are ignored when set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithFetcher(f Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

func WithTranscoder(t Transcoder) Option {
	return func(c *Config) {
		c.Transcoder = t
	}
}

func WithUpstream(u Upstream) Option {
	return func(c *Config) {
		c.Upstream = u
	}
}

func defaultConfig() *Config {
	return &Config{
		TempDir:         "/tmp",
		Host:            DefaultHost,
		Region:          DefaultRegion,
		DownloadTimeout: 2 * time.Minute,
		UploadTimeout:   30 * time.Second,
	}
}
