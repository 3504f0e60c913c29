package weaviate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wvmodels "github.com/weaviate/weaviate/entities/models"
)

func record(book string, chapter, verse float64, text string, distance float64) map[string]interface{} {
	return map[string]interface{}{
		"book":    book,
		"chapter": chapter,
		"verse":   verse,
		"text":    text,
		"_additional": map[string]interface{}{
			"distance": distance,
		},
	}
}

func response(collection string, records ...interface{}) map[string]wvmodels.JSONObject {
	return map[string]wvmodels.JSONObject{
		"Get": map[string]interface{}{
			collection: []interface{}(records),
		},
	}
}

func TestDecodeVerses(t *testing.T) {
	data := response("Vulgate",
		record("Gn", 1, 1, "In principio creavit Deus caelum et terram", 0.42),
		record("Jo", 1, 1, "In principio erat Verbum", 0.48),
	)

	verses, err := decodeVerses(data, "Vulgate")
	require.NoError(t, err)
	require.Len(t, verses, 2)

	assert.Equal(t, "Gn", verses[0].Book)
	assert.Equal(t, 1, verses[0].Chapter)
	assert.Equal(t, 1, verses[0].Verse.Verse)
	assert.Equal(t, "In principio creavit Deus caelum et terram", verses[0].Text)
	assert.InDelta(t, 0.42, verses[0].Distance, 1e-12)

	assert.Equal(t, "Jo 1:1", verses[1].Reference())
	assert.InDelta(t, 0.48, verses[1].Distance, 1e-12)
}

func TestDecodeVersesEmptyCollection(t *testing.T) {
	verses, err := decodeVerses(response("Vulgate"), "Vulgate")
	require.NoError(t, err)
	assert.Empty(t, verses)

	// A missing collection key decodes as no results.
	verses, err = decodeVerses(map[string]wvmodels.JSONObject{
		"Get": map[string]interface{}{},
	}, "Vulgate")
	require.NoError(t, err)
	assert.Empty(t, verses)
}

func TestDecodeVersesMalformedPayload(t *testing.T) {
	t.Run("missing Get section", func(t *testing.T) {
		_, err := decodeVerses(map[string]wvmodels.JSONObject{}, "Vulgate")
		assert.Error(t, err)
	})

	t.Run("record is not an object", func(t *testing.T) {
		_, err := decodeVerses(response("Vulgate", "bogus"), "Vulgate")
		assert.Error(t, err)
	})

	t.Run("missing text attribute", func(t *testing.T) {
		bad := record("Gn", 1, 1, "x", 0.1)
		delete(bad, "text")
		_, err := decodeVerses(response("Vulgate", bad), "Vulgate")
		assert.Error(t, err)
	})

	t.Run("non-integer chapter", func(t *testing.T) {
		bad := record("Gn", 1.5, 1, "x", 0.1)
		_, err := decodeVerses(response("Vulgate", bad), "Vulgate")
		assert.Error(t, err)
	})

	t.Run("non-positive verse", func(t *testing.T) {
		bad := record("Gn", 1, 0, "x", 0.1)
		_, err := decodeVerses(response("Vulgate", bad), "Vulgate")
		assert.Error(t, err)
	})

	t.Run("missing distance metadata", func(t *testing.T) {
		bad := record("Gn", 1, 1, "x", 0.1)
		bad["_additional"] = map[string]interface{}{}
		_, err := decodeVerses(response("Vulgate", bad), "Vulgate")
		assert.Error(t, err)
	})
}
