// Package shortcode derives the short code stored with a link.
// Encoders must be safe for concurrent use.
package shortcode

import (
	"encoding/base64"
	"strconv"
)

// Encoder derives a short code from a destination URL and its owner.
// Implementations must be deterministic: equal inputs give equal codes.
type Encoder interface {
	Encode(originalURL string, ownerID int64) string
}

// base64Encoder encodes originalURL followed by the decimal owner id with
// standard padded base64. It holds no state.
type base64Encoder struct{}

// NewBase64 returns the default Encoder.
func NewBase64() Encoder {
	return base64Encoder{}
}

func (base64Encoder) Encode(originalURL string, ownerID int64) string {
	return Encode(originalURL, ownerID)
}

// Encode is the package-level form of the default encoding.
// The result is not checked for uniqueness; the same owner shortening the
// same URL twice gets the same code.
func Encode(originalURL string, ownerID int64) string {
	raw := originalURL + strconv.FormatInt(ownerID, 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}
