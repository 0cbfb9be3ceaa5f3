package acr

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
)

// Fixed protocol constants of the ACRCloud identify API.
const (
	IdentifyPath     = "/v1/identify"
	DataType         = "audio"
	SignatureVersion = "1"
)

// StringToSign builds the newline-joined canonical string the upstream
// verifies the signature against. Field order is fixed by the protocol.
func StringToSign(accessKey string, timestamp int64) string {
	return strings.Join([]string{
		http.MethodPost,
		IdentifyPath,
		accessKey,
		DataType,
		SignatureVersion,
		strconv.FormatInt(timestamp, 10),
	}, "\n")
}

// Sign computes the base64 HMAC-SHA1 authentication tag for an identify
// request. It is a pure function of its inputs; the timestamp must be the
// exact truncated Unix-seconds value submitted alongside the signature.
func Sign(accessKey, accessSecret string, timestamp int64) string {
	mac := hmac.New(sha1.New, []byte(accessSecret))
	mac.Write([]byte(StringToSign(accessKey, timestamp)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
