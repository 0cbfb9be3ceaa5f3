package sonictrace

import (
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/acr"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/audio"
	"github.com/rahulmehta/sonictrace/pkg/sonictrace/fetch"
)

// Pipeline error taxonomy, re-exported so callers can classify failures
// with errors.Is without importing each stage package. Any of these aborts
// the request; the HTTP layer collapses them into one generic failure while
// keeping the cause message.
var (
	ErrDownload      = fetch.ErrDownload
	ErrTranscode     = audio.ErrTranscode
	ErrSigning       = acr.ErrSigning
	ErrUpload        = acr.ErrUpload
	ErrParseResponse = acr.ErrParseResponse
)
