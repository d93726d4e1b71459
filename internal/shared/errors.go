package shared

import (
	"errors"
	"fmt"

	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", httpx.ErrUnauthorized)
	// ErrMissingActor occurs when a protected handler runs without an authenticated actor.
	ErrMissingActor = fmt.Errorf("authentication required: %w", httpx.ErrUnauthorized)
)
