package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExportFilename builds a timestamped download name for a rendered
// report artifact, e.g. "monthly-payroll_20240131_154500.xlsx".
func ExportFilename(name, ext string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "report"
	}
	return fmt.Sprintf("%s_%s.%s", slug, time.Now().Format("20060102_150405"), ext)
}
