// Package roster implements the student roster ingestion pipeline: header
// normalization, field mapping, per-row validation, and the orchestrator that
// turns an uploaded workbook into accepted records or row errors.
package roster

import (
	"strings"

	domain "placementcms/domain/roster"
)

// Normalize lowercases a raw header and drops every byte that is not an
// ASCII letter or digit. Multi-byte runes are removed entirely.
func Normalize(header string) domain.HeaderKey {
	lower := strings.ToLower(header)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return domain.HeaderKey(b.String())
}
