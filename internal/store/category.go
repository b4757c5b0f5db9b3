package store

import (
	"context"

	"review-hub/internal/database"
	"review-hub/internal/model"
)

func ListCategories(ctx context.Context, db database.DB) ([]model.Category, error) {
	rows, err := db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrap("ListCategories", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, wrap("ListCategories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListCategories", err)
	}
	return categories, nil
}

// EnsureCategory 依名稱建立或取回分類
func EnsureCategory(ctx context.Context, db database.DB, name string) (*model.Category, error) {
	c := &model.Category{}
	err := db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name`,
		name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, wrap("EnsureCategory", err)
	}
	return c, nil
}
