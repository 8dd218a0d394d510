package advance

import "errors"

var (
	ErrEntryNotFound = errors.New("advance ledger entry not found")
)
