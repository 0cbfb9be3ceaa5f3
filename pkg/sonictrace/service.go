package sonictrace

import (
	"context"
	"net/http"

	"github.com/rahulmehta/sonictrace/pkg/logger"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/acr"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/audio"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/fetch"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/match"
)

// identifyService is the default implementation of the Service interface.
type identifyService struct {
	fetcher    Fetcher
	transcoder Transcoder
	upstream   Upstream
	log        Logger
	config     *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		client := cfg.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: cfg.DownloadTimeout}
		}
		fetcher = fetch.New(client)
	}

	transcoder := cfg.Transcoder
	if transcoder == nil {
		transcoder = audio.Transcoder{}
	}

	upstream := cfg.Upstream
	if upstream == nil {
		client := cfg.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: cfg.UploadTimeout}
		}
		upstream = acr.NewClient(cfg.Host, cfg.Region, client)
	}

	return &identifyService{
		fetcher:    fetcher,
		transcoder: transcoder,
		upstream:   upstream,
		log:        cfg.Logger,
		config:     cfg,
	}, nil
}

// Identify runs the whole pipeline for one request: download the source,
// transcode it into the upload sample, submit the signed sample, and
// normalize the raw response. Both scratch files are removed on every exit
// path, including failures after the download.
func (s *identifyService) Identify(ctx context.Context, req Request) (*match.Result, error) {
	ws, err := newWorkspace(s.config.TempDir)
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	s.log.Infof("identify %s: downloading %s", ws.id, req.AudioURL)
	if err := s.fetcher.Fetch(ctx, req.AudioURL, ws.Source()); err != nil {
		return nil, err
	}

	if meta, err := audio.Probe(ctx, ws.Source()); err == nil {
		s.log.Debugf("identify %s: source format=%s duration=%.1fs channels=%d rate=%d",
			ws.id, meta.Format, meta.DurationSec, meta.Channels, meta.SampleRate)
	}

	totalDurationMs, err := s.transcoder.Transcode(ctx, ws.Source(), ws.Sample())
	if err != nil {
		return nil, err
	}
	s.log.Infof("identify %s: transcoded sample, source duration %dms", ws.id, totalDurationMs)

	raw, err := s.upstream.Identify(ctx, ws.Sample(), acr.Credentials{
		AccessKey:    req.AccessKey,
		AccessSecret: req.AccessSecret,
	})
	if err != nil {
		return nil, err
	}

	result := match.Normalize(raw, totalDurationMs)
	s.log.Infof("identify %s: status=%s matches=%d", ws.id, result.Status, len(result.Data))
	return result, nil
}
