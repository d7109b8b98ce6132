package catalog

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash domain prefixes. Changing a payload layout bumps the version.
const domainQuantity = "varq/quantity/v1"

// hashWithDomain computes SHA-256 with domain separation:
// sha256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// digest covers the name, the unit and the payload.
func digest(name, unit, payload string) string {
	data := make([]byte, 0, len(name)+len(unit)+len(payload)+2)
	data = append(data, name...)
	data = append(data, 0x00)
	data = append(data, unit...)
	data = append(data, 0x00)
	data = append(data, payload...)
	return hashWithDomain(domainQuantity, data)
}
