package striga

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signingDelimiter joins the canonical tuple. Striga rejects requests
// whose signature was computed with any other delimiter or ordering.
const signingDelimiter = "|"

// signingString builds the canonical string for a request. The body
// segment is omitted entirely when the request carries no body; an
// empty trailing segment would produce a different signature and get
// rejected upstream.
func signingString(timestamp, method, url string, body []byte) string {
	parts := []string{timestamp, method, url}
	if body != nil {
		parts = append(parts, string(body))
	}
	return strings.Join(parts, signingDelimiter)
}

// sign computes the hex-encoded HMAC-SHA256 of the canonical string.
func sign(secret, canonical string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
