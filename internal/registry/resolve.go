package registry

import "slack-notifier/internal/kvlist"

// Resolve looks up every name of a ';' separated list, in order.
// The first unknown name aborts the whole list; no partial result is returned.
func Resolve[T any](list, kind string, lookup func(name string) (T, bool)) ([]T, error) {
	names := kvlist.Split(list)
	out := make([]T, 0, len(names))
	for _, name := range names {
		item, ok := lookup(name)
		if !ok {
			return nil, &UnresolvedError{Kind: kind, Name: name}
		}
		out = append(out, item)
	}
	return out, nil
}
