package store

import (
	"errors"
	"fmt"
	"strings"

	"review-hub/internal/database"
)

var (
	// ErrNotFound 查無資料或刪除、更新時沒有影響任何列
	ErrNotFound = errors.New("not found")
	// ErrDuplicate 違反 UNIQUE 約束
	ErrDuplicate = errors.New("duplicate")
)

// wrap 加上操作名稱並把 driver 錯誤轉為哨兵錯誤
func wrap(op string, err error) error {
	switch {
	case database.IsNoRows(err):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w (%v)", op, ErrDuplicate, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 回傳 ILIKE 子字串樣式；空字串表示不過濾
func containsPattern(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(s) + "%"
}
