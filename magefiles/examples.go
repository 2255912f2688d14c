//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Example runs each tool against its documented public example.
type Example mg.Namespace

// publicSheetID is a spreadsheet shared as "anyone with the link can view".
const publicSheetID = "1qXEqjk56TDF6Zupwqsb-bFrS8G4kS8GXSVzo3-PiZlQ"

func bin() string { return filepath.Join(binDir, binName) }

// Gsheet prints the head of the public example sheet.
func (Example) Gsheet() error {
	mg.Deps(Build)
	return sh.RunV(bin(), "gsheet", "--sheet_id", publicSheetID, "--gid", "0")
}

// RandomID prints three IDs with collision statistics.
func (Example) RandomID() error {
	mg.Deps(Build)
	return sh.RunV(bin(), "random-id", "--count", "3", "--stats")
}

// HTML converts a one-line document through the builtin engine.
func (Example) HTML() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "utilities-example-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "title.html")
	if err := os.WriteFile(in, []byte("<h1>Title</h1>\n<p>Hello, <a href=\"/docs\">docs</a>.</p>\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", in, err)
	}
	return sh.RunV(bin(), "html-to-markdown", "--in_html", in)
}
