// Package signature verifies Calendly webhook signatures.
//
// Calendly signs each delivery with
//
//	Calendly-Webhook-Signature: t=<unix-seconds>,v1=<hex-hmac-sha256>
//
// where the HMAC is computed over "<timestamp>.<raw body>". The timestamp
// doubles as a replay guard: deliveries older than the tolerance are
// rejected even when the HMAC itself is valid.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Tolerance is the maximum allowed skew between the signed timestamp and
// the server clock.
const Tolerance = 5 * time.Minute

var (
	ErrMalformedHeader = errors.New("malformed signature header")
	ErrExpired         = errors.New("signature timestamp outside replay window")
	ErrMismatch        = errors.New("signature mismatch")
)

// Parse splits a signature header into its timestamp and hex HMAC parts.
func Parse(header string) (timestamp int64, hexmac string, err error) {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "t="):
			timestamp, err = strconv.ParseInt(part[2:], 10, 64)
			if err != nil {
				return 0, "", ErrMalformedHeader
			}
		case strings.HasPrefix(part, "v1="):
			hexmac = part[3:]
		}
	}
	if timestamp == 0 || hexmac == "" {
		return 0, "", ErrMalformedHeader
	}
	return timestamp, hexmac, nil
}

// Compute returns the hex HMAC-SHA256 of "<timestamp>.<body>" under key.
func Compute(key []byte, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature header against the raw request body.
// The HMAC comparison is constant time via hmac.Equal.
func Verify(header string, body []byte, key []byte, now time.Time) error {
	timestamp, hexmac, err := Parse(header)
	if err != nil {
		return err
	}

	signedAt := time.Unix(timestamp, 0)
	skew := now.Sub(signedAt)
	if skew < 0 {
		skew = -skew
	}
	if skew > Tolerance {
		return ErrExpired
	}

	expected := Compute(key, timestamp, body)
	if !hmac.Equal([]byte(expected), []byte(hexmac)) {
		return ErrMismatch
	}
	return nil
}
