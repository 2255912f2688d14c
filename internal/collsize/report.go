// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collsize

import (
	"fmt"
	"io"
)

var units = []string{"KB", "MB", "GB", "TB", "PB", "EB"}

// HumanBytes formats n with binary units. Values below 1024 print as bytes;
// larger values use the unit below the next threshold with two decimals, so
// 1 MiB - 1 prints as "1024.00 KB".
func HumanBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	unit := 0
	v /= 1024
	for unit < len(units)-1 && n>>(10*(unit+2)) > 0 {
		unit++
		v /= 1024
	}
	return fmt.Sprintf("%.2f %s", v, units[unit])
}

// PrintResults writes the human-readable summary of r to w.
func PrintResults(w io.Writer, r Result) error {
	lines := []string{
		"",
		"Collection: " + r.PID,
	}
	if r.Title != "" {
		lines = append(lines, "Title: "+r.Title)
	}
	lines = append(lines,
		fmt.Sprintf("Items found: %d", r.NumFound),
		fmt.Sprintf("Items with size counted: %d", r.Counted),
	)
	if r.Missing > 0 {
		lines = append(lines, fmt.Sprintf("Items still missing size: %d", r.Missing))
	}
	lines = append(lines,
		fmt.Sprintf("Total bytes: %d", r.TotalBytes),
		"Human: "+HumanBytes(r.TotalBytes),
	)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
