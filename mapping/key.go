package mapping

import (
	"strconv"
)

// ParseKey parses the key value from its string form. Integers are returned as int64,
// any other value is returned unchanged.
func ParseKey(raw string) interface{} {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	return raw
}
