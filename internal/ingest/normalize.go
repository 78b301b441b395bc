package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"jobfinder/internal/domain"
)

// NormalizeJob turns a provider-native record into a canonical job. A nil
// error means the record passed validation and is safe to persist; any
// error means the record must be skipped, never half-written.
func NormalizeJob(providerID string, raw *domain.ProviderJob, now time.Time) (*domain.Job, error) {
	nativeID := strings.TrimSpace(raw.ID)
	if nativeID == "" {
		return nil, fmt.Errorf("missing provider job id")
	}

	title := collapseSpaces(raw.Title)
	if title == "" {
		return nil, fmt.Errorf("job %s: missing title", nativeID)
	}

	postedDate, err := normalizeTimestamp(raw.PostedDate)
	if err != nil {
		return nil, fmt.Errorf("job %s: bad posted_date %q: %w", nativeID, raw.PostedDate, err)
	}

	applyURL, err := normalizeApplyURL(raw.ApplyURL)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", nativeID, err)
	}

	minSalary, err := coerceSalary(raw.MinSalary)
	if err != nil {
		return nil, fmt.Errorf("job %s: bad min_salary: %w", nativeID, err)
	}
	maxSalary, err := coerceSalary(raw.MaxSalary)
	if err != nil {
		return nil, fmt.Errorf("job %s: bad max_salary: %w", nativeID, err)
	}
	if minSalary != nil && maxSalary != nil && *minSalary > *maxSalary {
		return nil, fmt.Errorf("job %s: min_salary %d above max_salary %d", nativeID, *minSalary, *maxSalary)
	}

	expiresAt := ""
	if strings.TrimSpace(raw.ExpiresAt) != "" {
		expiresAt, err = normalizeTimestamp(raw.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("job %s: bad expires_at %q: %w", nativeID, raw.ExpiresAt, err)
		}
	}

	tags := make([]string, 0, len(raw.Tags))
	for _, tag := range raw.Tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}

	return &domain.Job{
		JobID:       domain.CompositeJobKey(providerID, nativeID),
		ProviderID:  providerID,
		Title:       title,
		Description: strings.TrimSpace(raw.Description),
		Company:     collapseSpaces(raw.Company),
		Location:    canonicalLocation(raw.Location),
		Remote:      raw.Remote,
		MinSalary:   minSalary,
		MaxSalary:   maxSalary,
		PostedDate:  postedDate,
		ExpiresAt:   expiresAt,
		ApplyURL:    applyURL,
		Tags:        tags,
		Status:      domain.JobStatusActive,
		SyncedAt:    now.UTC().Format(time.RFC3339),
	}, nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// canonicalLocation collapses whitespace and title-cases each word so that
// "berlin", "BERLIN" and " Berlin " index and aggregate identically.
func canonicalLocation(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func normalizeTimestamp(s string) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	// Some providers send bare dates.
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("not ISO8601")
}

func normalizeApplyURL(s string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("bad apply_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("bad apply_url %q: not an absolute http(s) url", s)
	}
	return u.String(), nil
}

// coerceSalary accepts the numeric shapes providers actually send: JSON
// numbers decode as float64, hand-built records carry ints, and a few feeds
// quote the value as a string.
func coerceSalary(v any) (*int, error) {
	if v == nil {
		return nil, nil
	}
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, err
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("unparseable salary %q", n)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("unsupported salary type %T", v)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("salary out of range: %v", f)
	}
	rounded := int(math.Round(f))
	return &rounded, nil
}
