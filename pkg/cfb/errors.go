package cfb

import (
	"errors"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Package-level error values, one per spec.md §6.2 code. internal
// packages return the internal/types equivalents; mapErr translates them
// at this boundary so callers never need to import internal/types.
var (
	ErrInvalidArg         = errors.New("cfb: invalid argument")
	ErrInvalidPointer     = errors.New("cfb: invalid pointer")
	ErrInvalidName        = errors.New("cfb: invalid name")
	ErrFileNotFound       = errors.New("cfb: element not found")
	ErrFileAlreadyExists  = errors.New("cfb: element already exists")
	ErrInsufficientMemory = errors.New("cfb: insufficient memory")
	ErrInvalidHeader      = errors.New("cfb: invalid compound file header")
	ErrOldFormat          = errors.New("cfb: old-format compound file beta magic")
	ErrNotImplemented     = errors.New("cfb: not implemented")
)

// mapErr translates an internal/types sentinel error into its pkg/cfb
// equivalent, wrapping with %w so errors.Is still matches the internal
// sentinel for callers that inspect both. Read-only rejection maps onto
// ErrInvalidArg, per spec.md §6.3's mode-check description. Unrecognized
// errors (including nil) pass through unchanged.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrInvalidArg), errors.Is(err, types.ErrReadOnly):
		return ErrInvalidArg
	case errors.Is(err, types.ErrInvalidName):
		return ErrInvalidName
	case errors.Is(err, types.ErrFileNotFound):
		return ErrFileNotFound
	case errors.Is(err, types.ErrFileAlreadyExists):
		return ErrFileAlreadyExists
	case errors.Is(err, types.ErrInvalidHeader):
		return ErrInvalidHeader
	case errors.Is(err, types.ErrOldFormat):
		return ErrOldFormat
	case errors.Is(err, types.ErrWrongType):
		return ErrInvalidArg
	default:
		return err
	}
}
