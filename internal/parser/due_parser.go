package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	absoluteDueRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeDueRegex = regexp.MustCompile(`^(\d+)\s*(hour|hours|day|days|week|weeks)$`)
)

// ParseDueDate parses a deadline in either dd/mm/yyyy form or a relative
// form like "3 days", "24 hours" or "2 weeks".
func ParseDueDate(input string) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.TrimSpace(input)

	if due, err := parseAbsoluteDue(input); err == nil {
		return due, nil
	}
	if due, err := parseRelativeDue(input); err == nil {
		return due, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, X days, X hours, or X weeks")
}

// parseAbsoluteDue parses dd/mm/yyyy, pinning the deadline to end of day.
func parseAbsoluteDue(input string) (*time.Time, error) {
	matches := absoluteDueRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	due := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)

	// Rejects overflowed dates like 31/02 (handles leap years too)
	if due.Day() != day || due.Month() != time.Month(month) || due.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &due, nil
}

// parseRelativeDue parses "X hours", "X days" or "X weeks" from now.
// Day and week deadlines land on end of day.
func parseRelativeDue(input string) (*time.Time, error) {
	matches := relativeDueRegex.FindStringSubmatch(strings.ToLower(input))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return nil, fmt.Errorf("invalid amount")
	}

	now := time.Now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	var due time.Time
	switch matches[2] {
	case "hour", "hours":
		due = now.Add(time.Duration(amount) * time.Hour)
	case "day", "days":
		due = endOfToday.AddDate(0, 0, amount)
	case "week", "weeks":
		due = endOfToday.AddDate(0, 0, amount*7)
	default:
		return nil, fmt.Errorf("unsupported time unit")
	}

	return &due, nil
}

// FormatDueDate formats a deadline for display
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := due.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
