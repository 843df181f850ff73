package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail(" A@B.com "))
	assert.Equal(t, "a@b.com", NormalizeEmail("a@b.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestUserJSON_HidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(&User{ID: "u1", Email: "a@b.com", PasswordHash: "$2a$10$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"email":"a@b.com"`)
}
