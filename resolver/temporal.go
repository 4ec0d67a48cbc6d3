package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// temporalClass identifies which date-range query a temporal phrase maps to.
type temporalClass int

const (
	temporalNone temporalClass = iota
	temporalLastMeeting
	temporalOnDate
	temporalLastWeek
	temporalLastMonth
)

func (c temporalClass) String() string {
	switch c {
	case temporalLastMeeting:
		return "last_meeting"
	case temporalOnDate:
		return "on_date"
	case temporalLastWeek:
		return "last_week"
	case temporalLastMonth:
		return "last_month"
	default:
		return "none"
	}
}

var (
	lastMeetingPattern = regexp.MustCompile(`(?i)\b(?:last|latest|most recent|previous)\s+(?:meeting|call|sync|conversation)\b`)
	lastWeekPattern    = regexp.MustCompile(`(?i)\blast\s+week\b`)
	lastMonthPattern   = regexp.MustCompile(`(?i)\blast\s+month\b`)

	// monthNamePattern matches "Aug 7", "August 7th, 2025" style dates.
	monthNamePattern = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)

	// numericDatePattern matches "8/7", "8-7-25", "08/07/2024" style dates.
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// temporalSignal is the parsed temporal content of one message.
type temporalSignal struct {
	class temporalClass
	date  time.Time // populated for temporalOnDate
	err   error     // a date-looking phrase that failed to parse
}

// detectTemporal classifies the message's temporal language. A concrete date
// beats the rolling-window phrases; "last meeting" phrasing beats both when no
// date is present.
func detectTemporal(message string, now time.Time) temporalSignal {
	if monthNamePattern.MatchString(message) || numericDatePattern.MatchString(message) {
		date, err := parseMessageDate(message, now)
		if err != nil {
			return temporalSignal{class: temporalOnDate, err: err}
		}
		return temporalSignal{class: temporalOnDate, date: date}
	}
	if lastMeetingPattern.MatchString(message) {
		return temporalSignal{class: temporalLastMeeting}
	}
	if lastWeekPattern.MatchString(message) {
		return temporalSignal{class: temporalLastWeek}
	}
	if lastMonthPattern.MatchString(message) {
		return temporalSignal{class: temporalLastMonth}
	}
	return temporalSignal{class: temporalNone}
}

// parseMessageDate extracts the first date expression from the message.
// Month-name forms win over numeric forms when both appear.
func parseMessageDate(message string, now time.Time) (time.Time, error) {
	if m := monthNamePattern.FindStringSubmatch(message); m != nil {
		month, ok := monthsByPrefix[strings.ToLower(m[1])[:3]]
		if !ok {
			return time.Time{}, fmt.Errorf("unknown month %q", m[1])
		}
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return buildDate(year, month, day)
	}

	m := numericDatePattern.FindStringSubmatch(message)
	if m == nil {
		return time.Time{}, fmt.Errorf("no date expression found")
	}
	monthNum, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year := now.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}
	if monthNum < 1 || monthNum > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", monthNum)
	}
	return buildDate(year, time.Month(monthNum), day)
}

// buildDate validates the day against the real calendar: time.Date normalizes
// overflow (Feb 30 -> Mar 2), so a round trip that moves the date is invalid.
func buildDate(year int, month time.Month, day int) (time.Time, error) {
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %d-%d-%d", year, month, day)
	}
	return d, nil
}
