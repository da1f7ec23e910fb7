package util

import "strconv"

// MustParseUint parses a route parameter, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
