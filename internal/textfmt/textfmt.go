// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textfmt holds small string transforms used for naming files.
package textfmt

import (
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Underscore replaces every space in s with an underscore.
func Underscore(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// DatePrefix prefixes s with now's local date, or date and time when
// withTime is set, joined by an underscore. s itself is left unchanged.
func DatePrefix(s string, now time.Time, withTime bool) string {
	layout := dateLayout
	if withTime {
		layout = dateTimeLayout
	}
	return now.Format(layout) + "_" + s
}

// ParseBoolFlag reports whether v spells true, case-insensitively. Any
// other value, including the empty string, is false.
func ParseBoolFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
