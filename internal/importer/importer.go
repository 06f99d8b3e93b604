// Package importer turns scraper CSV exports into normalized lead records.
package importer

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/autobrand/crm-cli/internal/model"
)

// Import error kinds. All are recoverable: callers report them and leave
// prior state untouched.
var (
	ErrNotCSV      = eris.New("not a CSV file")
	ErrEmptyFile   = eris.New("CSV has no data rows")
	ErrNoValidRows = eris.New("no valid leads found")
)

// placeholderName marks a row whose name could not be resolved. Such rows
// are dropped silently rather than polluting the contact list.
const placeholderName = "Unknown"

const (
	defaultScore     = 50
	defaultFollowers = 0
)

// Result summarizes one import run.
type Result struct {
	Accepted   []model.Lead
	Duplicates int
}

// CheckFilename rejects files that are not .csv before any parsing happens.
func CheckFilename(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return eris.Wrapf(ErrNotCSV, "%s", filepath.Base(path))
	}
	return nil
}

// Import parses CSV text into candidate leads, scores and tiers them, and
// drops candidates whose name matches an existing lead (case-insensitive).
// Accepted leads are returned in file order; callers prepend them to keep
// the most-recent-first display convention.
func Import(csvText string, existing []model.Lead, now time.Time) (*Result, error) {
	lines := strings.Split(csvText, "\n")
	if len(lines) < 2 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, 0, 16)
	for _, h := range splitLine(strings.TrimRight(lines[0], "\r")) {
		headers = append(headers, normalizeHeader(h))
	}

	var candidates []model.Lead
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line == "" {
			continue
		}

		values := splitLine(line)
		// Short rows are assumed malformed or truncated.
		if len(values) < len(headers) {
			continue
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = cleanValue(values[i])
		}

		lead := mapRow(row, now)
		if lead.Name == placeholderName {
			continue
		}
		candidates = append(candidates, lead)
	}

	if len(candidates) == 0 {
		return nil, ErrNoValidRows
	}

	seen := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		seen[strings.ToLower(l.Name)] = struct{}{}
	}

	res := &Result{}
	for _, c := range candidates {
		if _, dup := seen[strings.ToLower(c.Name)]; dup {
			res.Duplicates++
			continue
		}
		res.Accepted = append(res.Accepted, c)
	}

	return res, nil
}

// mapRow builds a candidate lead from a header-keyed row, applying the
// scraper column fallbacks and lenient numeric defaults.
func mapRow(row map[string]string, now time.Time) model.Lead {
	score := parseIntOr(pick(row, "lead score", "score"), defaultScore)

	lead := model.Lead{
		ID:              uuid.New().String(),
		Name:            pickOr(placeholderName, row, "display name", "login", "name"),
		Email:           pick(row, "business email", "email"),
		Platform:        model.PlatformTwitch,
		Source:          model.SourceScraper,
		Followers:       parseIntOr(row["followers"], defaultFollowers),
		AvgViewers:      parseIntOr(row["avg viewers"], 0),
		Status:          model.LeadStatusNew,
		BroadcasterType: row["broadcaster type"],
		PrimaryGame:     row["primary game"],
		Twitter:         row["twitter"],
		YouTube:         row["youtube"],
		Instagram:       row["instagram"],
		Discord:         row["discord"],
		TwitchURL:       row["twitch url"],
		Description:     row["description"],
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	lead.SetScore(score)
	return lead
}

// pick returns the first non-empty value among the named columns.
func pick(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := row[k]; v != "" {
			return v
		}
	}
	return ""
}

// pickOr is pick with a fallback when every named column is empty.
func pickOr(fallback string, row map[string]string, keys ...string) string {
	if v := pick(row, keys...); v != "" {
		return v
	}
	return fallback
}

// parseIntOr parses leniently: empty or unparseable values fall back to def.
func parseIntOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
