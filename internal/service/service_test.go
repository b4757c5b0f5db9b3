package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"review-hub/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, PasswordCost, cost)

	require.NoError(t, ComparePassword(hash, "secret"))
	require.True(t, VerifyPassword(hash, "secret"))
	require.False(t, VerifyPassword(hash, "Secret"))
	require.False(t, VerifyPassword("not-a-hash", "secret"))

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) { return nil, errors.New("gen") }
	_, err = HashPassword("secret")
	require.Error(t, err)
}

func TestHashPasswordByteLimit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	// 24 個中文字 = 72 bytes，25 個就超過
	hash, err := HashPassword(strings.Repeat("密", 24))
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, strings.Repeat("密", 24)))

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		t.Fatal("bcrypt must not see an oversized password")
		return nil, nil
	}
	_, err = HashPassword(strings.Repeat("密", 25))
	require.ErrorIs(t, err, ErrPasswordTooLong)
	_, err = HashPassword(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", 0)
	require.Equal(t, DefaultTokenTTL, issuer.TTL())

	t.Run("round trip", func(t *testing.T) {
		tok, exp, err := issuer.Issue(42)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(DefaultTokenTTL), exp, 5*time.Second)

		id, err := issuer.Verify(tok)
		require.NoError(t, err)
		require.Equal(t, 42, id)
	})

	t.Run("expires at", func(t *testing.T) {
		tok, exp, err := NewTokenIssuer("s3cret", time.Minute).Issue(7)
		require.NoError(t, err)

		got, err := issuer.ExpiresAt(tok)
		require.NoError(t, err)
		require.Equal(t, exp.Unix(), got.Unix())

		_, err = issuer.ExpiresAt("garbage")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		timeNow = func() time.Time { return time.Now().Add(-9 * time.Hour) }
		tok, _, err := issuer.Issue(1)
		require.NoError(t, err)
		timeNow = time.Now

		_, err = issuer.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		tok, _, err := issuer.Issue(1)
		require.NoError(t, err)
		parts := strings.Split(tok, ".")
		forged, _, err := NewTokenIssuer("other", 0).Issue(2)
		require.NoError(t, err)
		// 換掉 payload，保留原簽章
		tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

		_, err = issuer.Verify(tampered)
		require.ErrorIs(t, err, ErrInvalidToken)
		_, err = issuer.Verify(forged)
		require.ErrorIs(t, err, ErrInvalidToken)
		_, err = issuer.Verify("garbage")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"id": 1, "sub": "1", "exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Verify(none)
		require.ErrorIs(t, err, ErrInvalidToken)

		hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"id": 1, "sub": "1", "exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		_, err = issuer.Verify(hs512)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed claims", func(t *testing.T) {
		noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "sub": "1"}).
			SignedString([]byte("s3cret"))
		require.NoError(t, err)
		_, err = issuer.Verify(noExp)
		require.ErrorIs(t, err, ErrInvalidToken)

		mismatch, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id": 1, "sub": "2", "exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		_, err = issuer.Verify(mismatch)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("parser reports invalid", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		parseWithClaims = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
			return &jwt.Token{Valid: false}, nil
		}
		_, err := issuer.Verify("whatever")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestCanModify(t *testing.T) {
	owner := &model.User{ID: 1}
	other := &model.User{ID: 2}
	admin := &model.User{ID: 3, IsAdmin: true}

	require.True(t, CanModify(owner, 1))
	require.False(t, CanModify(other, 1))
	require.True(t, CanModify(admin, 1))
	require.False(t, CanModify(nil, 1))
}

func TestAverageRating(t *testing.T) {
	require.False(t, AverageRating(nil).Valid)

	avg := AverageRating([]int{4, 5, 2})
	require.True(t, avg.Valid)
	require.InDelta(t, 11.0/3.0, avg.Value, 1e-9)

	items := WithRatings([]model.Item{{Ratings: []int{5, 3}}, {}})
	require.Equal(t, 4.0, items[0].AverageRating.Value)
	require.Equal(t, 2, items[0].ReviewCount)
	require.False(t, items[1].AverageRating.Valid)
	require.Zero(t, items[1].ReviewCount)
}
