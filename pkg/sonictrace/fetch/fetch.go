package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// ErrDownload covers unreachable sources, transport faults, and non-success
// HTTP statuses while fetching the caller's audio URL. Downloads are a
// single attempt; retrying is the caller's decision.
var ErrDownload = errors.New("audio download failed")

// Fetcher streams remote audio files to scratch storage. Plain URLs go
// through a bounded HTTP GET; YouTube watch URLs are resolved with yt-dlp
// since their page URL is not a direct media resource.
type Fetcher struct {
	client *http.Client
}

func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Fetcher{client: client}
}

// Fetch downloads rawURL into dst, creating or truncating it.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dst string) error {
	if isYouTubeURL(rawURL) {
		return f.fetchYouTube(ctx, rawURL, dst)
	}
	return f.fetchHTTP(ctx, rawURL, dst)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: source returned %s", ErrDownload, resp.Status)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: create scratch file: %v", ErrDownload, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	return nil
}

func (f *Fetcher) fetchYouTube(ctx context.Context, rawURL, dst string) error {
	dl := ytdlp.New().
		NoWarnings().
		NoPlaylist().
		Format("ba").
		Output(dst)

	if _, err := dl.Run(ctx, rawURL); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrDownload, ctx.Err())
		}
		return fmt.Errorf("%w: yt-dlp: %v", ErrDownload, err)
	}

	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("%w: yt-dlp produced no output file", ErrDownload)
	}

	return nil
}

func isYouTubeURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == "youtube.com" || host == "youtu.be" || host == "music.youtube.com"
}
