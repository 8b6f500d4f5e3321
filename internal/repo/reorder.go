package repo

import (
	"context"

	"Dayflow/internal/order"

	"github.com/jackc/pgx/v5"
)

// collectOrderItems reads (id, sort_order) rows locked by a reorder pass.
func collectOrderItems(rows pgx.Rows) ([]order.Item, error) {
	defer rows.Close()
	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// applyOrderUpdates writes the planned rank changes in one batch inside tx.
func applyOrderUpdates(ctx context.Context, tx pgx.Tx, table string, updates []order.Update) error {
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(
			`UPDATE `+table+` SET sort_order = $1, updated_at = now() WHERE id = $2`,
			u.SortOrder, u.ID)
	}
	br := tx.SendBatch(ctx, batch)
	for range updates {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	return br.Close()
}
