package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupIn(known map[string]int) func(string) (int, bool) {
	return func(name string) (int, bool) {
		v, ok := known[name]
		return v, ok
	}
}

func TestResolvePreservesOrder(t *testing.T) {
	known := map[string]int{"one": 1, "two": 2, "three": 3}

	got, err := Resolve("three;one;two;one", "thing", lookupIn(known))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2, 1}, got)
}

func TestResolveSingleName(t *testing.T) {
	got, err := Resolve("one", "thing", lookupIn(map[string]int{"one": 1}))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestResolveFailsOnAnyUnknownName(t *testing.T) {
	known := map[string]int{"one": 1, "two": 2, "three": 3}

	for _, list := range []string{"ghost", "ghost;one;two", "one;ghost;two", "one;two;three;ghost"} {
		t.Run(list, func(t *testing.T) {
			got, err := Resolve(list, "thing", lookupIn(known))
			require.ErrorIs(t, err, ErrUnresolvedReference)
			assert.Nil(t, got)

			var ue *UnresolvedError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, "ghost", ue.Name)
			assert.Equal(t, "thing", ue.Kind)
		})
	}
}

func TestResolveEmptySegmentIsUnresolved(t *testing.T) {
	known := map[string]int{"one": 1, "two": 2}

	for _, list := range []string{"", "one;;two", "one;"} {
		_, err := Resolve(list, "thing", lookupIn(known))
		var ue *UnresolvedError
		require.True(t, errors.As(err, &ue), "list %q", list)
		assert.Equal(t, "", ue.Name)
	}
}
