// Package id generates ULID identifiers for labeling runs and their output
// artifacts. ULIDs sort lexicographically by generation time, which keeps
// report directories chronological for free.
package id

import "github.com/oklog/ulid/v2"

// New returns a fresh ULID string.
func New() string {
	return ulid.Make().String()
}
