package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rahulmehta/sonictrace/pkg/sonictrace/acr"
)

// Status values of a normalized identification result.
const (
	StatusMatched = "matched"
	StatusNoMatch = "no_match"
)

// Sentinels used when the upstream omits a field.
const (
	unknownValue = "Unknown"
	noISRC       = "N/A"
)

// Classification bands derived from the upstream confidence score.
// Lower bounds are inclusive.
const (
	exactMatchThreshold  = 90
	remixSampleThreshold = 40
)

// Match is the canonical, caller-facing form of one upstream candidate.
type Match struct {
	Title             string  `json:"title"`
	Artist            string  `json:"artist"`
	Type              string  `json:"type"`
	ReleaseDate       string  `json:"release_date"`
	TimeRange         string  `json:"time_range"`
	MatchScore        string  `json:"match_score"`
	OverlapPercentage string  `json:"overlap_percentage"`
	ISRC              string  `json:"isrc"`
	Label             string  `json:"label"`
	SpotifyID         *string `json:"spotify_id"`
	DeezerID          *string `json:"deezer_id"`
	YouTubeID         *string `json:"youtube_id"`
}

// Result is the final ranked identification outcome.
type Result struct {
	Status string  `json:"status"`
	Data   []Match `json:"data"`
}

// Normalize maps a raw upstream response onto the canonical result.
// totalDurationMs is the decoded length of the caller's source file and
// drives the overlap computation. Candidates from all categories are merged
// in the fixed order music, custom files, humming, without de-duplication,
// then ranked by score descending with the merge order as the tiebreaker.
func Normalize(raw *acr.Response, totalDurationMs int) *Result {
	if raw == nil || raw.Status.Code != acr.StatusSuccess {
		return &Result{Status: StatusNoMatch, Data: []Match{}}
	}

	var candidates []acr.Match
	candidates = append(candidates, raw.Metadata.Music...)
	candidates = append(candidates, raw.Metadata.CustomFiles...)
	candidates = append(candidates, raw.Metadata.Humming...)

	sort.SliceStable(candidates, func(i, j int) bool {
		return score(candidates[i]) > score(candidates[j])
	})

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, normalizeOne(c, totalDurationMs))
	}

	// A success code with zero candidates still reports matched.
	return &Result{Status: StatusMatched, Data: matches}
}

func normalizeOne(c acr.Match, totalDurationMs int) Match {
	startMs, endMs := segment(c)
	s := score(c)

	m := Match{
		Title:             c.Title,
		Artist:            joinArtists(c.Artists),
		Type:              Classify(s),
		ReleaseDate:       orDefault(c.ReleaseDate, unknownValue),
		TimeRange:         TimeRange(startMs, endMs),
		MatchScore:        fmt.Sprintf("%d%%", int(s)),
		OverlapPercentage: fmt.Sprintf("%d%%", OverlapPercent(endMs-startMs, totalDurationMs)),
		ISRC:              orDefault(c.ExternalIDs.ISRC, noISRC),
		Label:             orDefault(c.Label, unknownValue),
	}

	if c.ExternalMetadata.Spotify != nil {
		if id := c.ExternalMetadata.Spotify.Track.ID.String(); id != "" {
			m.SpotifyID = &id
		}
	}
	if c.ExternalMetadata.Deezer != nil {
		if id := c.ExternalMetadata.Deezer.Track.ID.String(); id != "" {
			m.DeezerID = &id
		}
	}
	if c.ExternalMetadata.YouTube != nil && c.ExternalMetadata.YouTube.VID != "" {
		vid := c.ExternalMetadata.YouTube.VID
		m.YouTubeID = &vid
	}

	return m
}

// segment resolves the matched region inside the caller's file. A missing
// begin offset means 0; a missing end offset falls back to begin + duration.
// The end never precedes the begin, even for hostile inputs.
func segment(c acr.Match) (startMs, endMs int) {
	if c.SampleBeginTimeOffsetMs != nil {
		startMs = int(*c.SampleBeginTimeOffsetMs)
	}
	if c.SampleEndTimeOffsetMs != nil {
		endMs = int(*c.SampleEndTimeOffsetMs)
		if endMs < startMs {
			endMs = startMs
		}
	} else {
		durationMs := 0
		if c.DurationMs != nil {
			durationMs = int(*c.DurationMs)
		}
		endMs = startMs + durationMs
	}
	return startMs, endMs
}

func score(c acr.Match) float64 {
	if c.Score == nil {
		return 0
	}
	return *c.Score
}

// Classify buckets a 0-100 confidence score into a display label.
func Classify(score float64) string {
	switch {
	case score >= exactMatchThreshold:
		return "Exact Match"
	case score >= remixSampleThreshold:
		return "Remix/Sample"
	default:
		return "Low Confidence"
	}
}

// OverlapPercent is the share of the source duration covered by one match,
// rounded up. Rounding is ceiling on purpose; it is part of the display
// contract.
func OverlapPercent(matchDurationMs, totalDurationMs int) int {
	if totalDurationMs <= 0 || matchDurationMs <= 0 {
		return 0
	}
	return (100*matchDurationMs + totalDurationMs - 1) / totalDurationMs
}

// FormatMS renders a millisecond offset as a zero-padded mm:ss string.
func FormatMS(ms int) string {
	if ms <= 0 {
		return "00:00"
	}
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// TimeRange renders the matched segment of the caller's file.
func TimeRange(startMs, endMs int) string {
	return fmt.Sprintf("[%s -> %s]", FormatMS(startMs), FormatMS(endMs))
}

func joinArtists(artists []acr.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
