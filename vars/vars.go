package vars

import "strings"

// FirstNonZero returns the first value that is not the zero value of T.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

// StrToBool parses a command line boolean. Unknown words are false.
func StrToBool(str string) bool {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
