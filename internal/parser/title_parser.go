package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/horizon/internal/models"
)

// ParsedTask represents a task parsed from a one-line quick-add
type ParsedTask struct {
	Title  string
	Type   models.Type
	Done   bool
	Errors []string
}

var (
	bucketRegex = regexp.MustCompile(`(^|\s)@([a-zA-Z]+)\b`)
	doneRegex   = regexp.MustCompile(`(^|\s)\+done\b`)
)

// ParseTitle extracts board metadata from a task title
// Syntax: "Task title @weekly +done"
// Bucket tokens accept @monthly, @weekly, @daily or the short forms @m, @w, @d.
// The last bucket token wins. Type is empty when the title has none.
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Errors: []string{},
	}

	for _, match := range bucketRegex.FindAllStringSubmatch(input, -1) {
		typ, err := models.ParseType(match[2])
		if err != nil {
			result.Errors = append(result.Errors, "Unknown bucket '@"+match[2]+"'. Use: @monthly, @weekly or @daily")
			continue
		}
		result.Type = typ
	}
	input = bucketRegex.ReplaceAllString(input, "$1")

	if doneRegex.MatchString(input) {
		result.Done = true
		input = doneRegex.ReplaceAllString(input, "$1")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
