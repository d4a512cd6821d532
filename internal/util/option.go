package util

import "strings"

// NormalizeOption canonicalizes an option letter to lowercase a-d form.
func NormalizeOption(option string) string {
	return strings.ToLower(strings.TrimSpace(option))
}
