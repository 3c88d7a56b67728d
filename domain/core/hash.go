package core

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Checksum identifies uploaded file content in the import log
type Checksum string

// NewChecksum hashes data with xxhash
func NewChecksum(data []byte) Checksum {
	digest := xxhash.New()
	_, _ = digest.Write(data)
	return Checksum(hex.EncodeToString(digest.Sum(nil)))
}

// String returns the string representation
func (c Checksum) String() string {
	return string(c)
}

// IsEmpty checks if the checksum is empty
func (c Checksum) IsEmpty() bool {
	return c == ""
}
