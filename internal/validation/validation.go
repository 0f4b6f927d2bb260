package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID reports a malformed identifier.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// ValidateUUID checks that id parses as a UUID. Route middleware applies
// this to every {uuid} path parameter; request validators apply it to
// identifier fields in bodies.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
