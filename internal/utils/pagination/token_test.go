package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	entryDate := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 6, 14, 9, 31, 12, 345678000, time.UTC)

	token := EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, err := DecodeToken("aGVsbG8=") // "hello"
	assert.Error(t, err)
}
