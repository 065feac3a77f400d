package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	c := Cursor{
		EntryDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "6f1c1b8e-7d0b-4e55-9d38-5b1f3b0e9a01",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, c, decoded)

	// Zero time values
	zero := Cursor{ID: "x"}
	decodedZero, err := DecodeToken(EncodeToken(zero))
	require.NoError(t, err)
	assert.Equal(t, zero, decodedZero)

	// Current time
	now := time.Now().UTC()
	decodedNow, err := DecodeToken(EncodeToken(Cursor{EntryDate: now, CreatedAt: now, ID: "y"}))
	require.NoError(t, err)
	assert.True(t, now.Equal(decodedNow.EntryDate))
	assert.True(t, now.Equal(decodedNow.CreatedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeToken(EncodeMultiFieldToken("notadate", "2023-05-15T14:30:45Z", "id"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	_, err = DecodeToken(EncodeMultiFieldToken("2023-05-15T00:00:00Z", "later", "id"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")

	_, err = DecodeToken(EncodeMultiFieldToken("2023-05-15T00:00:00Z", "2023-05-15T00:00:00Z", ""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestCursorBefore(t *testing.T) {
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	c := Cursor{EntryDate: day, CreatedAt: at, ID: "m"}

	tests := []struct {
		name      string
		entryDate time.Time
		createdAt time.Time
		id        string
		want      bool
	}{
		{"earlier date", day.AddDate(0, 0, -1), at.Add(time.Hour), "z", true},
		{"later date", day.AddDate(0, 0, 1), at, "a", false},
		{"same date earlier creation", day, at.Add(-time.Second), "z", true},
		{"same date later creation", day, at.Add(time.Second), "a", false},
		{"same instant lower id", day, at, "a", true},
		{"same instant higher id", day, at, "z", false},
		{"the cursor itself", day, at, "m", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Before(tt.entryDate, tt.createdAt, tt.id))
		})
	}
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	require.NoError(t, err)
	assert.Equal(t, fields, decoded)

	single, err := DecodeMultiFieldToken(EncodeMultiFieldToken("single"))
	require.NoError(t, err)
	assert.Equal(t, []string{"single"}, single)

	_, err = DecodeMultiFieldToken("this is not base64!")
	assert.Error(t, err)
}
