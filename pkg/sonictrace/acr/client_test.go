package acr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

// writeSample drops a small fake MP3 sample into a temp dir.
func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.mp3")
	if err := os.WriteFile(path, []byte("fake-mp3-bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write sample: %v", err)
	}
	return path
}

func frozenClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestIdentifySubmitsSignedForm(t *testing.T) {
	const sampleBytes = len("fake-mp3-bytes")
	creds := Credentials{AccessKey: "test_key", AccessSecret: "test_secret"}

	var gotForm map[string]string
	var gotSampleLen int

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != IdentifyPath {
			t.Errorf("path = %q, want %q", r.URL.Path, IdentifyPath)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
			return
		}

		gotForm = map[string]string{}
		for name := range r.MultipartForm.Value {
			gotForm[name] = r.FormValue(name)
		}

		file, _, err := r.FormFile("sample")
		if err != nil {
			t.Errorf("Missing sample part: %v", err)
			return
		}
		defer file.Close()
		buf := make([]byte, 1024)
		n, _ := file.Read(buf)
		gotSampleLen = n

		w.Write([]byte(`{"status": {"code": 0}, "metadata": {"music": [{"title": "Hit", "score": 95}]}}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "IN", upstream.Client())
	client.now = frozenClock(1700000000)

	resp, err := client.Identify(context.Background(), writeSample(t), creds)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}

	if resp.Status.Code != StatusSuccess {
		t.Errorf("status code = %d, want 0", resp.Status.Code)
	}
	if len(resp.Metadata.Music) != 1 || resp.Metadata.Music[0].Title != "Hit" {
		t.Errorf("unexpected parsed metadata: %+v", resp.Metadata)
	}

	if gotSampleLen != sampleBytes {
		t.Errorf("uploaded sample length = %d, want %d", gotSampleLen, sampleBytes)
	}

	wantForm := map[string]string{
		"access_key":        "test_key",
		"sample_bytes":      strconv.Itoa(sampleBytes),
		"timestamp":         "1700000000",
		"signature":         Sign(creds.AccessKey, creds.AccessSecret, 1700000000),
		"data_type":         "audio",
		"signature_version": "1",
		"region":            "IN",
	}
	for name, want := range wantForm {
		if gotForm[name] != want {
			t.Errorf("form field %s = %q, want %q", name, gotForm[name], want)
		}
	}
}

func TestIdentifySignatureMatchesSubmittedTimestamp(t *testing.T) {
	creds := Credentials{AccessKey: "k", AccessSecret: "s"}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("Failed to parse form: %v", err)
			return
		}
		ts, err := strconv.ParseInt(r.FormValue("timestamp"), 10, 64)
		if err != nil {
			t.Errorf("Bad timestamp field: %v", err)
			return
		}
		// The signature must verify against the timestamp that was sent.
		if got, want := r.FormValue("signature"), Sign("k", "s", ts); got != want {
			t.Errorf("signature = %q does not verify against submitted timestamp", got)
		}
		w.Write([]byte(`{"status": {"code": 1001}}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "IN", upstream.Client())
	if _, err := client.Identify(context.Background(), writeSample(t), creds); err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
}

func TestIdentifyUploadErrorOnBadStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "IN", upstream.Client())
	_, err := client.Identify(context.Background(), writeSample(t), Credentials{AccessKey: "k", AccessSecret: "s"})
	if !errors.Is(err, ErrUpload) {
		t.Errorf("err = %v, want ErrUpload", err)
	}
}

func TestIdentifyUploadErrorOnTransportFault(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused

	client := NewClient(upstream.URL, "IN", &http.Client{Timeout: time.Second})
	_, err := client.Identify(context.Background(), writeSample(t), Credentials{AccessKey: "k", AccessSecret: "s"})
	if !errors.Is(err, ErrUpload) {
		t.Errorf("err = %v, want ErrUpload", err)
	}
}

func TestIdentifyDecodesSpotifyStringID(t *testing.T) {
	// A matched response carrying Spotify metadata must parse cleanly;
	// its track ids are opaque strings, not numbers.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": {"code": 0},
			"metadata": {"music": [{
				"title": "Hit",
				"score": 95,
				"external_metadata": {
					"spotify": {"track": {"id": "3n3Ppam7vgaVa1iaRUc9Lp"}},
					"deezer": {"track": {"id": 3135556}}
				}
			}]}
		}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "IN", upstream.Client())
	resp, err := client.Identify(context.Background(), writeSample(t), Credentials{AccessKey: "k", AccessSecret: "s"})
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}

	m := resp.Metadata.Music[0]
	if got := m.ExternalMetadata.Spotify.Track.ID.String(); got != "3n3Ppam7vgaVa1iaRUc9Lp" {
		t.Errorf("spotify id = %q", got)
	}
	if got := m.ExternalMetadata.Deezer.Track.ID.String(); got != "3135556" {
		t.Errorf("deezer id = %q", got)
	}
}

func TestIdentifyParseErrorOnMalformedBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "IN", upstream.Client())
	_, err := client.Identify(context.Background(), writeSample(t), Credentials{AccessKey: "k", AccessSecret: "s"})
	if !errors.Is(err, ErrParseResponse) {
		t.Errorf("err = %v, want ErrParseResponse", err)
	}
}

func TestIdentifyMissingSample(t *testing.T) {
	client := NewClient("identify-test.invalid", "IN", &http.Client{Timeout: time.Second})
	_, err := client.Identify(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"), Credentials{})
	if !errors.Is(err, ErrUpload) {
		t.Errorf("err = %v, want ErrUpload", err)
	}
}

func TestEndpointDefaultsToHTTPS(t *testing.T) {
	client := NewClient("identify-ap-southeast-1.acrcloud.com", "IN", nil)
	want := "https://identify-ap-southeast-1.acrcloud.com/v1/identify"
	if got := client.endpoint(); got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
}
