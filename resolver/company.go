package resolver

import (
	"regexp"
	"strings"
)

// Tokens that are too generic to identify a company on their own.
var companyStopTokens = map[string]bool{
	"inc": true, "llc": true, "ltd": true, "corp": true, "corporation": true,
	"company": true, "group": true, "the": true, "and": true, "team": true,
	"formerly": true, "software": true, "solutions": true, "technologies": true,
}

// minParentheticalToken rejects short tokens during parenthetical matching so
// a 3-letter abbreviation cannot match as a fragment of an unrelated word.
const minParentheticalToken = 4

var parentheticalPattern = regexp.MustCompile(`\(([^)]+)\)`)

// extractCompanyName finds which known company a message mentions.
// Matching order: exact substring of the full stored name, the base name with
// any parenthetical suffix stripped, distinctive base-name tokens on word
// boundaries (case-exact for short all-caps abbreviations like "ACE"), and
// finally tokens from inside a parenthetical suffix with word-boundary
// matching. Returns the stored canonical name, or "" when nothing matches.
func extractCompanyName(message string, knownNames []string) string {
	lowerMsg := strings.ToLower(message)

	for _, name := range knownNames {
		if name != "" && strings.Contains(lowerMsg, strings.ToLower(name)) {
			return name
		}
	}

	for _, name := range knownNames {
		base := baseName(name)
		if base != "" && base != name && strings.Contains(lowerMsg, strings.ToLower(base)) {
			return name
		}
	}

	for _, name := range knownNames {
		for _, token := range strings.Fields(baseName(name)) {
			if matchToken(message, token, false) {
				return name
			}
		}
	}

	for _, name := range knownNames {
		inner := parentheticalPattern.FindStringSubmatch(name)
		if inner == nil {
			continue
		}
		for _, token := range strings.Fields(inner[1]) {
			if matchToken(message, token, true) {
				return name
			}
		}
	}

	return ""
}

// baseName strips any parenthetical suffix from a stored company name.
func baseName(name string) string {
	return strings.TrimSpace(parentheticalPattern.ReplaceAllString(name, ""))
}

// matchToken word-boundary matches a single company-name token against the
// message. Stop tokens never match. Tokens shorter than
// minParentheticalToken only match when they are all-caps abbreviations
// appearing verbatim; parenthetical tokens reject them outright.
func matchToken(message, token string, parenthetical bool) bool {
	token = strings.Trim(token, ".,")
	if token == "" || companyStopTokens[strings.ToLower(token)] {
		return false
	}
	if len(token) < minParentheticalToken {
		if parenthetical || token != strings.ToUpper(token) || len(token) < 3 {
			return false
		}
		// Case-exact so "ACE" matches "the ACE call" but never "face".
		boundary := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
		return boundary.MatchString(message)
	}
	boundary := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
	return boundary.MatchString(message)
}
