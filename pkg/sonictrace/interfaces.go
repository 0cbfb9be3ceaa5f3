package sonictrace

import (
	"context"

	"github.com/rahulmehta/sonictrace/pkg/sonictrace/acr"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/match"
)

// Service runs the identification pipeline for one request at a time.
// Invocations are independent and may run concurrently.
type Service interface {
	Identify(ctx context.Context, req Request) (*match.Result, error)
}

// Fetcher streams the caller's audio URL to local scratch storage.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, dst string) error
}

// Transcoder converts a downloaded source into the upload sample and
// reports the source's decoded duration in milliseconds.
type Transcoder interface {
	Transcode(ctx context.Context, sourcePath, samplePath string) (int, error)
}

// Upstream submits a sample to the fingerprint service.
type Upstream interface {
	Identify(ctx context.Context, samplePath string, creds acr.Credentials) (*acr.Response, error)
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
