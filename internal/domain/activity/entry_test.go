package activity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_JSONRoundTrip(t *testing.T) {
	original := Entry{
		ID:    "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		Type:  TypePayment,
		Title: "دفع جزئي: 17",
		Meta:  "250.00 دينار",
		Date:  time.Date(2024, 3, 9, 14, 5, 6, 123_000_000, time.UTC),
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"payment"`)

	var decoded Entry
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}
