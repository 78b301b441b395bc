package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"jobfinder/internal/domain"
)

// Fingerprint hashes the normalized filter parameters of a search. A cursor
// is replayable only against a request with the same fingerprint, so the
// canonical form must be stable: fixed key order, defaults already applied,
// limit and cursor excluded.
func Fingerprint(f *domain.SearchFilter) string {
	parts := []string{
		"q=" + strings.TrimSpace(strings.ToLower(f.Query)),
		"location=" + strings.TrimSpace(strings.ToLower(f.Location)),
		"remote=" + formatOptBool(f.Remote),
		"min_salary=" + formatOptInt(f.MinSalary),
		"max_salary=" + formatOptInt(f.MaxSalary),
		"provider=" + f.Provider,
		"posted_after=" + f.PostedAfter,
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "&")))
	return hex.EncodeToString(sum[:])
}

func formatOptBool(v *bool) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%t", *v)
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
