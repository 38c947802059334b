// Package kvlist parses the comma separated key=value option strings used for
// field, attachment and message definitions.
//
//	name=deploy,title=Deploy,value=ok\,done,short=1
//
// A backslash escapes the byte after it, so separators can appear in values.
package kvlist

import (
	"errors"
	"fmt"
	"strings"
)

const (
	pairSep  = ','
	kvSep    = '='
	listSep  = ";"
	escapeCh = '\\'
)

// ErrMalformed is returned for a pair that has no key/value separator.
var ErrMalformed = errors.New("kvlist: malformed key=value list")

// Parse splits raw into pairs and returns the values of the requested keys.
// Keys that are not requested are ignored. When a key repeats, the last value wins.
func Parse(raw string, keys ...string) (map[string]string, error) {
	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[k] = struct{}{}
	}

	out := make(map[string]string, len(keys))
	for _, pair := range splitEscaped(raw) {
		if pair.text == "" {
			continue
		}
		if pair.sepAt < 0 {
			return nil, fmt.Errorf("%w: %q has no %q", ErrMalformed, pair.text, string(kvSep))
		}
		key := pair.text[:pair.sepAt]
		if _, ok := wanted[key]; !ok {
			continue
		}
		out[key] = pair.text[pair.sepAt+1:]
	}
	return out, nil
}

// Split breaks a multi-valued option (fields=a;b;c) into its names.
// Empty segments are kept so callers can report them.
func Split(value string) []string {
	return strings.Split(value, listSep)
}

type pair struct {
	text  string
	sepAt int
}

// splitEscaped walks raw once, unescaping as it goes and remembering the
// position of the first unescaped '=' in each pair.
func splitEscaped(raw string) []pair {
	var (
		pairs   []pair
		b       strings.Builder
		sepAt   = -1
		escaped bool
	)

	flush := func() {
		pairs = append(pairs, pair{text: b.String(), sepAt: sepAt})
		b.Reset()
		sepAt = -1
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == escapeCh:
			escaped = true
		case c == pairSep:
			flush()
		case c == kvSep && sepAt < 0:
			sepAt = b.Len()
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	if escaped {
		b.WriteByte(escapeCh)
	}
	flush()

	return pairs
}
