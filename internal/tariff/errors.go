package tariff

import (
	"fmt"

	"github.com/wattplan/meter-service/internal/types"
)

// ValidationError is returned when a plan field is missing or out of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid plan: %s: %s", e.Field, e.Reason)
}

// ImportError is the shared whole-import failure type.
type ImportError = types.ImportError

const importSource = "plans"
