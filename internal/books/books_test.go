package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsBijective(t *testing.T) {
	names := Names()
	require.Len(t, names, 73)

	seenCodes := make(map[string]bool, len(names))
	for _, name := range names {
		code, ok := CodeFor(name)
		require.True(t, ok, "no code for %q", name)
		require.False(t, seenCodes[code], "duplicate code %q", code)
		seenCodes[code] = true

		back, ok := NameFor(code)
		require.True(t, ok, "no name for %q", code)
		assert.Equal(t, name, back)
	}
}

func TestLookups(t *testing.T) {
	code, ok := CodeFor("Genesis")
	require.True(t, ok)
	assert.Equal(t, "Gn", code)

	name, ok := NameFor("Apc")
	require.True(t, ok)
	assert.Equal(t, "Revelation", name)

	_, ok = CodeFor("Gospel of Thomas")
	assert.False(t, ok)

	_, ok = NameFor("Xyz")
	assert.False(t, ok)

	assert.True(t, IsCode("1Cor"))
	assert.False(t, IsCode("1 Corinthians"))
}

func TestResolve(t *testing.T) {
	t.Run("short code passes through", func(t *testing.T) {
		code, ok := Resolve("Gn")
		require.True(t, ok)
		assert.Equal(t, "Gn", code)
	})

	t.Run("full name translates", func(t *testing.T) {
		code, ok := Resolve("1 Kings")
		require.True(t, ok)
		assert.Equal(t, "3Rg", code)
	})

	t.Run("name equal to its own code", func(t *testing.T) {
		code, ok := Resolve("Job")
		require.True(t, ok)
		assert.Equal(t, "Job", code)
	})

	t.Run("unknown input", func(t *testing.T) {
		_, ok := Resolve("Lorem")
		assert.False(t, ok)
	})
}
