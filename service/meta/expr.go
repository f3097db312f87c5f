package meta

import (
	"os"
	"strings"
	"unicode"
)

// ExpandEnv replaces all occurrences of ${env.KEY} in the input with the
// value of the environment variable KEY (or "" if unset). Malformed
// expressions are kept literal.
func ExpandEnv(value string) string {
	const prefix = "${env."
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], prefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}
		b.WriteString(value[i : i+idx])
		startKey := i + idx + len(prefix)
		endKey := strings.IndexByte(value[startKey:], '}')
		if endKey < 0 {
			// no closing brace, keep the rest literal
			b.WriteString(value[i+idx:])
			break
		}
		key := value[startKey : startKey+endKey]
		if !validKey(key) {
			// keep the prefix literal and rescan what follows it
			b.WriteString(value[i+idx : startKey])
			i = startKey
			continue
		}
		b.WriteString(os.Getenv(key))
		i = startKey + endKey + 1
	}
	return b.String()
}

// validKey accepts letters, digits and '_' (an empty key is tolerated and
// expands to "").
func validKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
