package sonictrace

// Request is one immutable identification request: a fetchable audio URL
// plus the caller's fingerprint-service credentials. It is consumed once
// and never persisted.
type Request struct {
	AudioURL     string
	AccessKey    string
	AccessSecret string
}
