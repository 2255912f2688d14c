// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/utilities/internal/collsize"
	"github.com/pdiddy/utilities/internal/gsheet"
	"github.com/pdiddy/utilities/internal/htmlmd"
	"github.com/pdiddy/utilities/internal/idgen"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string { return e.Err.Error() }
func (e *exitError) Unwrap() error { return e.Err }

// usageErrorf returns an error that exits with exitUsage.
func usageErrorf(format string, args ...any) error {
	return &exitError{Code: exitUsage, Err: fmt.Errorf(format, args...)}
}

// usageSentinels are the argument errors returned by the tool packages.
var usageSentinels = []error{
	idgen.ErrInvalidLength,
	htmlmd.ErrSourceConflict,
	htmlmd.ErrNoSource,
	gsheet.ErrMissingSheetID,
	collsize.ErrMissingPID,
}

// exitCode maps err to a process exit code: bad flags or arguments exit 2,
// everything else 1.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	for _, s := range usageSentinels {
		if errors.Is(err, s) {
			return exitUsage
		}
	}
	// cobra reports unknown subcommands as plain errors.
	if strings.HasPrefix(err.Error(), "unknown command") {
		return exitUsage
	}
	return exitFailure
}
