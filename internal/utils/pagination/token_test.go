package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{
		Date:      time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "3f1c2a9e-entry",
	}
	token := c.Encode()
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "/")

	got, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, c.Date.Equal(got.Date))
	assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, c.ID, got.ID)
}

func TestDecodeCursorErrors(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	_, err := DecodeCursor("not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, err = DecodeCursor(enc("2025-05-15T00:00:00Z"))
	assert.ErrorContains(t, err, "split")

	_, err = DecodeCursor(enc("notadate|2025-05-15T00:00:00Z|id"))
	assert.ErrorContains(t, err, "date parse")

	_, err = DecodeCursor(enc("2025-05-15T00:00:00Z|later|id"))
	assert.ErrorContains(t, err, "created_at parse")
}

func TestNextToken(t *testing.T) {
	last := Cursor{Date: time.Now().UTC(), CreatedAt: time.Now().UTC(), ID: "x"}
	assert.Nil(t, NextToken(3, 5, last))
	assert.Nil(t, NextToken(0, 0, last))
	tok := NextToken(5, 5, last)
	require.NotNil(t, tok)
	assert.Equal(t, last.Encode(), *tok)
}
