package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePhone strips whitespace inside phone numbers ("0812 3456" -> "08123456").
func NormalizePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}
