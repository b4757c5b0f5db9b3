// File: internal/service/token.go
package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL 登入 token 的預設有效時間
const DefaultTokenTTL = 8 * time.Hour

// ErrInvalidToken 涵蓋簽章錯誤、演算法不符、過期與 claims 格式錯誤
var ErrInvalidToken = errors.New("invalid token")

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// Claims 只攜帶使用者 ID
type Claims struct {
	ID int `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer 以 HS256 簽發與驗證 session token
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer ttl <= 0 時使用 DefaultTokenTTL
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue 產生 token 並回傳到期時間
func (t *TokenIssuer) Issue(userID int) (string, time.Time, error) {
	now := timeNow()
	expiresAt := now.Add(t.ttl)
	claims := Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify 驗證 token 並回傳使用者 ID；任何失敗都回傳 ErrInvalidToken
func (t *TokenIssuer) Verify(tokenString string) (int, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.ID, nil
}

// ExpiresAt 驗證 token 並回傳它自己的 exp，登出時黑名單只需保留到這個時間
func (t *TokenIssuer) ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

func (t *TokenIssuer) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := parseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID <= 0 || claims.Subject != strconv.Itoa(claims.ID) || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
