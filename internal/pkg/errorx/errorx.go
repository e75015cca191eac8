// Package errorx holds error helpers shared across layers.
package errorx

import (
	"context"
	"errors"
)

// IsContextError reports whether err was caused by a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
