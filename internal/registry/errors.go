package registry

import (
	"errors"
	"fmt"
)

// QuotaExceededError is returned by Register when the registry already holds
// its maximum number of entries.
type QuotaExceededError struct {
	Entries int
	Limit   int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("registry quota exceeded: %d entries (limit %d)", e.Entries, e.Limit)
}

// IsQuotaError returns true if err is a QuotaExceededError.
func IsQuotaError(err error) bool {
	var qe *QuotaExceededError
	return errors.As(err, &qe)
}

// ErrUnsupportedType is returned by Register for payloads without a
// canonical form, and by Materialize for payload types it cannot rebuild.
var ErrUnsupportedType = errors.New("unsupported payload type")
