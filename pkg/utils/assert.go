package utils

import (
	"github.com/pkg/errors"
)

// Assert panics when cond is false, but only in binaries built with the
// xoxodebug tag. Release builds compile the check away and carry on with
// whatever the caller passed.
func Assert(cond bool, format string, args ...any) {
	if debugAssertions && !cond {
		panic(errors.Errorf("assertion failed: "+format, args...))
	}
}

