package acr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUpload covers transport failures and non-success HTTP statuses
	// while talking to the identification service.
	ErrUpload = errors.New("upload to identification service failed")

	// ErrParseResponse means the upstream body was not well-formed JSON.
	ErrParseResponse = errors.New("malformed identification response")

	// ErrSigning is reserved; signing cannot fail with well-formed
	// credentials but the pipeline taxonomy names the case.
	ErrSigning = errors.New("request signing failed")
)

// Client submits transcoded samples to the ACRCloud identify endpoint.
// The host and region are injected configuration, never derived from the
// caller's request.
type Client struct {
	host       string
	region     string
	httpClient *http.Client

	// now is a seam for tests; production clients use wall-clock time.
	now func() time.Time
}

func NewClient(host, region string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		host:       host,
		region:     region,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (c *Client) endpoint() string {
	host := c.host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host + IdentifyPath
}

// Identify uploads the sample at samplePath as a signed multipart form and
// decodes the raw response. The timestamp is frozen once, immediately
// before signing, and the same value is sent with the form.
func (c *Client) Identify(ctx context.Context, samplePath string, creds Credentials) (*Response, error) {
	info, err := os.Stat(samplePath)
	if err != nil {
		return nil, fmt.Errorf("%w: stat sample: %v", ErrUpload, err)
	}

	sample, err := os.Open(samplePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sample: %v", ErrUpload, err)
	}
	defer sample.Close()

	timestamp := c.now().Unix()
	signature := Sign(creds.AccessKey, creds.AccessSecret, timestamp)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("sample", filepath.Base(samplePath))
	if err != nil {
		return nil, fmt.Errorf("%w: build form: %v", ErrUpload, err)
	}
	if _, err := io.Copy(part, sample); err != nil {
		return nil, fmt.Errorf("%w: read sample: %v", ErrUpload, err)
	}

	fields := map[string]string{
		"access_key":        creds.AccessKey,
		"sample_bytes":      strconv.FormatInt(info.Size(), 10),
		"timestamp":         strconv.FormatInt(timestamp, 10),
		"signature":         signature,
		"data_type":         DataType,
		"signature_version": SignatureVersion,
		"region":            c.region,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("%w: build form: %v", ErrUpload, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("%w: build form: %v", ErrUpload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream returned %s", ErrUpload, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseResponse, err)
	}

	return &parsed, nil
}
