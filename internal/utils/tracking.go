package utils

import (
	"math/rand/v2"
	"strings"
	"time"
)

const trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTrackingID returns a human-readable payment reference of the form
// ZP-<14-digit UTC timestamp>-<6 uppercase base-36 chars>. The suffix is
// non-cryptographic; uniqueness of payments is enforced by the transaction
// reference, not by this value.
func GenerateTrackingID() string {
	ts := time.Now().UTC().Format("20060102150405")

	var suffix strings.Builder
	for i := 0; i < 6; i++ {
		suffix.WriteByte(trackingAlphabet[rand.IntN(len(trackingAlphabet))])
	}

	return "ZP-" + ts + "-" + suffix.String()
}
