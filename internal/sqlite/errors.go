package sqlite

import (
	"strings"

	"github.com/venturly/venturly/internal/repository"
)

// constraintErr translates sqlite constraint failures into repository
// sentinels. The modernc driver exposes constraint violations only through
// the error text, so this matches on the sqlite message fragments. Returns
// nil when the error is not a recognized constraint failure.
func constraintErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return repository.ErrForeignKeyViolation
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return repository.ErrConflict
	default:
		return nil
	}
}
