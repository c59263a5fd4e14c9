package mesh

import "github.com/pkg/errors"

// errMismatch builds a stack-carrying error describing a violated mesh
// invariant.
func errMismatch(format string, args ...any) error {
	return errors.Errorf(format, args...)
}
