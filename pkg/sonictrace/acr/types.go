package acr

import "encoding/json"

// Credentials are the caller-supplied ACRCloud project keys. They live for
// one request and are never persisted.
type Credentials struct {
	AccessKey    string
	AccessSecret string
}

// StatusSuccess is the upstream status code that marks an identified sample.
// Any other code is a normal no-match outcome, not an error.
const StatusSuccess = 0

// Response is the decoded body of an identify call.
type Response struct {
	Status   Status   `json:"status"`
	Metadata Metadata `json:"metadata"`
}

type Status struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Version string `json:"version"`
}

// Metadata carries the three result categories the service may return.
// Absent categories decode as nil slices.
type Metadata struct {
	Music       []Match `json:"music"`
	CustomFiles []Match `json:"custom_files"`
	Humming     []Match `json:"humming"`
}

// Match is one candidate from any result category. Offsets are positions
// inside the uploaded sample, not the catalog track.
type Match struct {
	Title                   string           `json:"title"`
	Artists                 []Artist         `json:"artists"`
	Score                   *float64         `json:"score"`
	SampleBeginTimeOffsetMs *float64         `json:"sample_begin_time_offset_ms"`
	SampleEndTimeOffsetMs   *float64         `json:"sample_end_time_offset_ms"`
	PlayOffsetMs            *float64         `json:"play_offset_ms"`
	DurationMs              *float64         `json:"duration_ms"`
	ReleaseDate             string           `json:"release_date"`
	Label                   string           `json:"label"`
	ExternalIDs             ExternalIDs      `json:"external_ids"`
	ExternalMetadata        ExternalMetadata `json:"external_metadata"`
}

type Artist struct {
	Name string `json:"name"`
}

type ExternalIDs struct {
	ISRC string `json:"isrc"`
	UPC  string `json:"upc"`
}

// ExternalMetadata holds per-platform identifier blocks. Any block may be
// missing for any candidate.
type ExternalMetadata struct {
	Spotify *PlatformTrack `json:"spotify"`
	Deezer  *PlatformTrack `json:"deezer"`
	YouTube *YouTubeRef    `json:"youtube"`
}

// PlatformTrack wraps the nested track id Spotify and Deezer use. Deezer
// sends numeric ids, Spotify sends opaque strings, so the id accepts both.
type PlatformTrack struct {
	Track struct {
		ID TrackID `json:"id"`
	} `json:"track"`
}

// TrackID is a platform track identifier that decodes from either a JSON
// string or a JSON number.
type TrackID string

func (id *TrackID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TrackID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = TrackID(n.String())
	return nil
}

func (id TrackID) String() string { return string(id) }

type YouTubeRef struct {
	VID string `json:"vid"`
}
