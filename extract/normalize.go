package extract

import (
	"regexp"
	"strings"

	"github.com/leverageai/dealdesk/core"
)

// unassignedOwner passes through normalization unchanged.
const unassignedOwner = "Unassigned"

var multiOwnerSeparator = regexp.MustCompile(`(?i)\s*(?:,|&|\band\b)\s*`)

// NormalizeOwner canonicalizes an extracted owner name against the combined
// attendee roster. Precedence:
//
//  1. Exact case-insensitive match against a canonical name wins.
//  2. A first-name match wins only when it is unique across the roster;
//     an ambiguous first name returns the original string, never a guess.
//  3. Multi-owner strings ("A and B", "A, B") are split and each part
//     normalized recursively; empty segments are dropped.
//  4. Unmatched names and "Unassigned" pass through unchanged.
func NormalizeOwner(owner string, canonical []string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" || owner == unassignedOwner {
		return owner
	}

	for _, name := range canonical {
		if strings.EqualFold(owner, name) {
			return name
		}
	}

	if match, unique := firstNameMatch(owner, canonical); unique {
		return match
	}

	if parts := multiOwnerSeparator.Split(owner, -1); len(parts) > 1 {
		var normalized []string
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			normalized = append(normalized, NormalizeOwner(part, canonical))
		}
		if len(normalized) > 0 {
			return strings.Join(normalized, " and ")
		}
	}

	return owner
}

// firstNameMatch reports the canonical name whose first name matches owner,
// and whether that match is unique.
func firstNameMatch(owner string, canonical []string) (string, bool) {
	var match string
	count := 0
	for _, name := range canonical {
		first, _, _ := strings.Cut(name, " ")
		if strings.EqualFold(owner, first) {
			match = name
			count++
		}
	}
	return match, count == 1
}

// normalizeDeadline substitutes the literal not-specified value for blank
// deadlines.
func normalizeDeadline(deadline string) string {
	if strings.TrimSpace(deadline) == "" {
		return core.DeadlineNotSpecified
	}
	return deadline
}
