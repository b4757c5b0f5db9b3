package store

import (
	"context"
	"strings"

	"review-hub/internal/database"
	"review-hub/internal/model"
)

const userColumns = `id, first_name, last_name, email, password, is_admin, created_at`

// UserUpdate nil 欄位保持不變
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	IsAdmin      *bool
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
	)
	return u, err
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

// GetUserByEmail email 不分大小寫
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
	if err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

// CreateUser email 以小寫儲存；重複時回傳 ErrDuplicate
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, password, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

// EnsureUser 已存在相同 email 時不更動並回傳既有資料，created 為 false
func EnsureUser(ctx context.Context, db database.DB, u *model.User) (*model.User, bool, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, password, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, created_at`,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
	)
	err := row.Scan(&u.ID, &u.CreatedAt)
	if err == nil {
		return u, true, nil
	}
	if !database.IsNoRows(err) {
		return nil, false, wrap("EnsureUser", err)
	}
	existing, err := GetUserByEmail(ctx, db, u.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UpdateUser 只更新非 nil 欄位並回傳更新後的資料
func UpdateUser(ctx context.Context, db database.DB, userID int, upd UserUpdate) (*model.User, error) {
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		upd.Email = &email
	}
	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET
		   first_name = COALESCE($2, first_name),
		   last_name  = COALESCE($3, last_name),
		   email      = COALESCE($4, email),
		   password   = COALESCE($5, password),
		   is_admin   = COALESCE($6, is_admin)
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
		upd.FirstName,
		upd.LastName,
		upd.Email,
		upd.PasswordHash,
		upd.IsAdmin,
	))
	if err != nil {
		return nil, wrap("UpdateUser", err)
	}
	return u, nil
}

// DeleteUser 評論與留言由外鍵 CASCADE 一併刪除
func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return wrap("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteUser", ErrNotFound)
	}
	return nil
}
