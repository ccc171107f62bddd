package report

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintPrefix tags every fingerprint as belonging to this scanner,
// so a fingerprint can be told apart from an unrelated identifier at a
// glance.
const fingerprintPrefix = "nsi_"

// fingerprintHexLen is how many hex characters of the digest survive
// into the fingerprint; short enough to read, long enough that two
// unrelated secrets colliding is not a practical concern.
const fingerprintHexLen = 12

// Fingerprint derives a stable, short identifier for secret, used for
// deduplication and to key ignore-file entries. It never includes the
// secret itself.
func Fingerprint(secret string) string {
	digest := sha256.Sum256([]byte(secret))
	return fingerprintPrefix + hex.EncodeToString(digest[:])[:fingerprintHexLen]
}

// Mask redacts secret for display: short secrets become a run of
// asterisks of the same length, longer ones keep their first and last
// four bytes and collapse the middle.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return repeatStar(len(secret))
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func repeatStar(n int) string {
	stars := make([]byte, n)
	for i := range stars {
		stars[i] = '*'
	}
	return string(stars)
}
