package images_test

import (
	"encoding/json"
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/catalog/images"

	"github.com/stretchr/testify/assert"
)

// Fixtures below reproduce corruption shapes observed in real imported
// rows: single quotes, unquoted keys, unquoted URL values, trailing
// commas, and truncated arrays.

func TestRepairLegacyJSON_SingleQuotesAndBareKeys(t *testing.T) {
	in := `[{'url': 'https://example.com/1.jpg'}, {url: 'https://example.com/2.jpg'}]`

	var decoded []map[string]any
	err := json.Unmarshal([]byte(images.RepairLegacyJSON(in)), &decoded)
	assert.NoError(t, err)
	assert.Len(t, decoded, 2)
	assert.Equal(t, "https://example.com/1.jpg", decoded[0]["url"])
	assert.Equal(t, "https://example.com/2.jpg", decoded[1]["url"])
}

func TestRepairLegacyJSON_UnquotedURLValues(t *testing.T) {
	in := `[{"url": https://example.com/a.jpg}, {"url": https://example.com/b.jpg}]`

	var decoded []map[string]any
	err := json.Unmarshal([]byte(images.RepairLegacyJSON(in)), &decoded)
	assert.NoError(t, err)
	assert.Len(t, decoded, 2)
	assert.Equal(t, "https://example.com/a.jpg", decoded[0]["url"])
}

func TestRepairLegacyJSON_TrailingCommas(t *testing.T) {
	in := `["a.jpg", "b.jpg",]`

	var decoded []string
	err := json.Unmarshal([]byte(images.RepairLegacyJSON(in)), &decoded)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, decoded)
}

func TestRepairLegacyJSON_TruncatedArray(t *testing.T) {
	in := `["a.jpg", "b.jpg"`

	var decoded []string
	err := json.Unmarshal([]byte(images.RepairLegacyJSON(in)), &decoded)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, decoded)
}

func TestRepairLegacyJSON_FeedsIntoScreenshotResolution(t *testing.T) {
	got := images.ResolveScreenshots(map[string]any{
		"images_screenshots": `[{'url': 'https://example.com/1.jpg'}, {'url': 'https://example.com/2.jpg'}]`,
	})
	assert.Equal(t,
		[]string{"https://example.com/1.jpg", "https://example.com/2.jpg"},
		got)
}
