// utils/errors.go
package utils

import (
	"errors"
	"fmt"

	"github.com/joy095/consult/config"
)

var ErrUserIDNotFound = errors.New("authentication required: user ID not found")

// InternalError builds the message for a 500 response. Outside production the
// underlying error is appended so failures stay diagnosable.
func InternalError(base string, err error) string {
	if config.IsProduction() {
		return base
	}
	return fmt.Sprintf("%s: %v", base, err)
}
