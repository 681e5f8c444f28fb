package parser

import (
	"regexp"
	"strings"
	"time"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Course   string
	Tags     []string
	Priority string
	DueDate  *time.Time
	Errors   []string
}

var (
	inlineCourseRegex = regexp.MustCompile(`\b([A-Za-z]{2,8})-(\d{3,4})\b`)
	tagRegex          = regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	priorityRegex     = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
	dueRegex          = regexp.MustCompile(`due:([^\s]+)`)
)

// ParseTaskLine extracts metadata from a task line using natural syntax
// Syntax: "Read chapter 4 INFO-2010 #reading +high due:3 days"
func ParseTaskLine(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Tags:   []string{},
		Errors: []string{},
	}

	// Course code (pattern: DEPT-NNN)
	if matches := inlineCourseRegex.FindAllString(input, -1); len(matches) > 0 {
		normalized, err := NormalizeCourseCode(matches[0])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid course code: "+matches[0])
		} else {
			result.Course = normalized
		}
		input = inlineCourseRegex.ReplaceAllString(input, "")
	}

	// Tags (#tag1,tag2 or #tag1 #tag2)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		for _, tag := range strings.Split(match[1], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Priority (+high, +3, +medium, ...)
	if matches := priorityRegex.FindStringSubmatch(input); len(matches) > 1 {
		priority := strings.ToLower(matches[1])
		if isValidPriority(priority) {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors,
				"Invalid priority '"+matches[1]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Due date (due:3days, due:15/12/2026, ...)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 1 {
		due, err := ParseDueDate(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+matches[1]+"': "+err.Error())
		} else {
			result.DueDate = due
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

// isValidPriority checks if a priority value is valid
func isValidPriority(priority string) bool {
	switch priority {
	case "low", "medium", "med", "high", "1", "2", "3":
		return true
	}
	return false
}
