package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// OwnerPrefix returns the storage namespace for an owner: "guest/<hash>" for
// guest identities and "user/<hash>" otherwise, so guest uploads can be expired
// by prefix.
func OwnerPrefix(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	hash := hex.EncodeToString(sum[:16])
	if strings.HasPrefix(ownerID, "guest:") {
		return "guest/" + hash
	}
	return "user/" + hash
}
