package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAverageRatingJSON(t *testing.T) {
	b, err := json.Marshal(AverageRating{})
	require.NoError(t, err)
	require.Equal(t, `"No ratings yet"`, string(b))

	b, err = json.Marshal(AverageRating{Value: 3.6666666, Valid: true})
	require.NoError(t, err)
	require.Equal(t, `3.67`, string(b))

	b, err = json.Marshal(Item{ID: 1, Name: "nike"})
	require.NoError(t, err)
	require.Contains(t, string(b), `"averageRating":"No ratings yet"`)
	require.NotContains(t, string(b), "ratings\"")
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Email: "a@b.com", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret-hash")
	require.NotContains(t, string(b), "password")
}
