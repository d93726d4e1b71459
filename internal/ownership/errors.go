package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
)

var (
	// ErrNotFound reports that the target record does not exist.
	ErrNotFound = fmt.Errorf("record %w", httpx.ErrNotFound)
	// ErrInsufficientPrivileges reports a policy denial.
	ErrInsufficientPrivileges = fmt.Errorf("insufficient privileges: %w", httpx.ErrForbidden)
	// ErrStoreUnavailable reports a record store failure before any write took effect.
	ErrStoreUnavailable = fmt.Errorf("record store %w", httpx.ErrUnavailable)
)

// StoreError classifies an error returned by a record store. ErrNotFound,
// ErrStoreUnavailable and context errors pass through; anything else is
// reported as ErrStoreUnavailable.
func StoreError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}
}
