package extras

import (
	"fmt"

	"github.com/kyleGrealis/sumExtras/internal/summary"
)

// MissingDictionaryError indicates a labeling operation was invoked
// without a dictionary to draw descriptions from.
type MissingDictionaryError struct{ Op string }

func (e *MissingDictionaryError) Error() string {
	if e == nil || e.Op == "" {
		return "no dictionary available"
	}
	return fmt.Sprintf("%s: no dictionary available", e.Op)
}

// UnsupportedTableKindError indicates a table whose construction kind
// is neither standard nor survey, so it cannot be rebuilt.
type UnsupportedTableKindError struct{ Kind summary.Kind }

func (e *UnsupportedTableKindError) Error() string {
	return fmt.Sprintf("unsupported table kind %q", e.Kind)
}
