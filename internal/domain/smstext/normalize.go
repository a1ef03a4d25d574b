// Package smstext rewrites model output into characters an SMS carrier delivers
// without switching the message to UCS-2 or splitting it into extra segments.
package smstext

import (
	"strings"
	"unicode/utf8"
)

// Normalize replaces every code point found in the substitution table and
// copies everything else through byte for byte, including invalid UTF-8.
func Normalize(input string) string {
	var builder strings.Builder
	builder.Grow(len(input))
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if replacement, ok := lookup(r, size); ok {
			builder.WriteString(replacement)
		} else {
			builder.WriteString(input[i : i+size])
		}
		i += size
	}
	return builder.String()
}

// Replacement reports the substitute for r, if the table has one.
func Replacement(r rune) (string, bool) {
	replacement, ok := substitutions[r]
	return replacement, ok
}

func lookup(r rune, size int) (string, bool) {
	if r == utf8.RuneError && size <= 1 {
		return "", false
	}
	return Replacement(r)
}
