// File: internal/store/item.go
package store

import (
	"context"

	"review-hub/internal/database"
	"review-hub/internal/model"

	"github.com/jackc/pgx/v5"
)

// itemSelect 同時帶出分類名稱與所有評分，平均值由呼叫端計算
const itemSelect = `
SELECT i.id, i.name, i.description, i.image, i.category_id, c.name, i.created_at,
       COALESCE(array_agg(r.rating ORDER BY r.id) FILTER (WHERE r.id IS NOT NULL), '{}') AS ratings
FROM items i
JOIN categories c ON c.id = i.category_id
LEFT JOIN reviews r ON r.item_id = i.id`

const itemGroupBy = `
GROUP BY i.id, c.name
ORDER BY i.id`

func scanItem(row pgx.Row) (model.Item, error) {
	var it model.Item
	err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Image,
		&it.CategoryID,
		&it.Category,
		&it.CreatedAt,
		&it.Ratings,
	)
	return it, err
}

func queryItems(ctx context.Context, db database.DB, op, sql string, args ...any) ([]model.Item, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return items, nil
}

func ListItems(ctx context.Context, db database.DB) ([]model.Item, error) {
	return queryItems(ctx, db, "ListItems", itemSelect+itemGroupBy)
}

func GetItemByID(ctx context.Context, db database.DB, itemID int) (*model.Item, error) {
	it, err := scanItem(db.QueryRow(ctx,
		itemSelect+`
WHERE i.id = $1`+itemGroupBy,
		itemID,
	))
	if err != nil {
		return nil, wrap("GetItemByID", err)
	}
	return &it, nil
}

// SearchItems query 比對名稱與描述、category 比對分類名稱，皆為不分大小寫的子字串；空字串不過濾
func SearchItems(ctx context.Context, db database.DB, query, category string) ([]model.Item, error) {
	return queryItems(ctx, db, "SearchItems",
		itemSelect+`
WHERE ($1 = '' OR i.name ILIKE $1 ESCAPE '\' OR i.description ILIKE $1 ESCAPE '\')
  AND ($2 = '' OR c.name ILIKE $2 ESCAPE '\')`+itemGroupBy,
		containsPattern(query),
		containsPattern(category),
	)
}

func ItemExists(ctx context.Context, db database.DB, itemID int) (bool, error) {
	var ok bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, itemID).Scan(&ok); err != nil {
		return false, wrap("ItemExists", err)
	}
	return ok, nil
}

// CreateItemIfMissing 名稱已存在時不做任何事並回傳 false
func CreateItemIfMissing(ctx context.Context, db database.DB, it *model.Item) (bool, error) {
	tag, err := db.Exec(ctx,
		`INSERT INTO items (name, description, image, category_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO NOTHING`,
		it.Name,
		it.Description,
		it.Image,
		it.CategoryID,
	)
	if err != nil {
		return false, wrap("CreateItemIfMissing", err)
	}
	return tag.RowsAffected() > 0, nil
}
