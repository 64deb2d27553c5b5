package util

import "errors"

var (
	// ErrCmdAbort is reported when a command must exit with a failure status
	// without printing an error, for example when a check finds unformatted files.
	ErrCmdAbort = errors.New("aborted")
)
