package main

import (
	"fmt"
	"net/url"
)

// IdentifyRequest is the request body for POST /identify.
type IdentifyRequest struct {
	AudioURL     string `json:"audio_url"`
	AccessKey    string `json:"acr_access_key"`
	AccessSecret string `json:"acr_access_secret"`
}

// Validate checks if the request is valid
func (r *IdentifyRequest) Validate() error {
	if r.AudioURL == "" {
		return fmt.Errorf("audio_url is required")
	}
	u, err := url.Parse(r.AudioURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("audio_url must be an absolute URL")
	}
	if r.AccessKey == "" {
		return fmt.Errorf("acr_access_key is required")
	}
	if r.AccessSecret == "" {
		return fmt.Errorf("acr_access_secret is required")
	}
	return nil
}

// ErrorResponse is the error body of a failed pipeline request. Internal
// failure kinds are not distinguished; only the cause message is exposed.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
