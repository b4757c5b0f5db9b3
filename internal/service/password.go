// File: internal/service/password.go
package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 與既有資料的雜湊強度一致
const PasswordCost = 10

// MaxPasswordBytes bcrypt 只接受 72 bytes；中文等多位元組字元會更早超過
const MaxPasswordBytes = 72

// ErrPasswordTooLong 屬於輸入錯誤，handler 會回 400
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// VerifyPassword 是 ComparePassword 的布林版本；格式錯誤的 hash 也只回傳 false
func VerifyPassword(hash, password string) bool {
	return ComparePassword(hash, password) == nil
}
