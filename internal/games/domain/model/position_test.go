package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_MarshalJSON(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Position{ID: "p1", OwnerID: "u1", FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Title: "t", CreatedAt: created}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]interface{}{
		"_id":       "p1",
		"id":        "p1",
		"fen":       "8/8/8/8/8/8/8/8 w - - 0 1",
		"title":     "t",
		"createdAt": "2024-03-01T12:00:00Z",
	}, got)
}

func TestPosition_MarshalJSONSlice(t *testing.T) {
	raw, err := json.Marshal([]*Position{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
