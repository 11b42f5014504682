package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/repository"
)

// GetSnapshot returns the persisted inventory snapshot with its products
// in the order they were written.
func (r *Repository) GetSnapshot(ctx context.Context) (*models.InventoryState, error) {
	const opn = "repository.sqlite.GetSnapshot"

	var state models.InventoryState

	err := r.db.QueryRowContext(ctx, "SELECT last_updated FROM inventory_state WHERE id = 1").Scan(&state.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%s: failed to get snapshot timestamp: %w", opn, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, url, image_url, price, original_price, discount,
		       sizes, all_sizes, colors, category, first_seen
		FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get products: %w", opn, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		var sizesRaw, allSizesRaw, colorsRaw string

		err = rows.Scan(
			&p.ID, &p.Name, &p.URL, &p.Image, &p.Price, &p.OriginalPrice, &p.Discount,
			&sizesRaw, &allSizesRaw, &colorsRaw, &p.Category, &p.FirstSeen,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan product: %w", opn, err)
		}

		if p.Sizes, err = decodeLabels(sizesRaw); err != nil {
			return nil, fmt.Errorf("%s: failed to decode sizes for %s: %w", opn, p.ID, err)
		}
		if p.AllSizes, err = decodeLabels(allSizesRaw); err != nil {
			return nil, fmt.Errorf("%s: failed to decode all sizes for %s: %w", opn, p.ID, err)
		}
		if p.Colors, err = decodeLabels(colorsRaw); err != nil {
			return nil, fmt.Errorf("%s: failed to decode colors for %s: %w", opn, p.ID, err)
		}

		state.Products = append(state.Products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return &state, nil
}

// UpdateSnapshot atomically replaces the stored snapshot using a
// transaction; on any failure nothing is written.
func (r *Repository) UpdateSnapshot(ctx context.Context, state *models.InventoryState) error {
	const opn = "repository.sqlite.UpdateSnapshot"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after a successful commit only returns sql.ErrTxDone

	_, err = tx.ExecContext(
		ctx,
		"INSERT OR REPLACE INTO inventory_state (id, last_updated) VALUES (1, ?)",
		state.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to update snapshot timestamp: %w", opn, err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM products")
	if err != nil {
		return fmt.Errorf("%s: failed to delete old products: %w", opn, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (product_id, name, url, image_url, price, original_price,
		                      discount, sizes, all_sizes, colors, category, first_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare insert statement: %w", opn, err)
	}
	defer stmt.Close()

	for _, p := range state.Products {
		sizesRaw, err := encodeLabels(p.Sizes)
		if err != nil {
			return fmt.Errorf("%s: failed to encode sizes for %s: %w", opn, p.ID, err)
		}
		allSizesRaw, err := encodeLabels(p.AllSizes)
		if err != nil {
			return fmt.Errorf("%s: failed to encode all sizes for %s: %w", opn, p.ID, err)
		}
		colorsRaw, err := encodeLabels(p.Colors)
		if err != nil {
			return fmt.Errorf("%s: failed to encode colors for %s: %w", opn, p.ID, err)
		}

		_, err = stmt.ExecContext(
			ctx,
			p.ID, p.Name, p.URL, p.Image, p.Price, p.OriginalPrice,
			p.Discount, sizesRaw, allSizesRaw, colorsRaw, p.Category, p.FirstSeen,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to insert product %s: %w", opn, p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// Label slices are stored as JSON text so the schema stays a single table.
func encodeLabels(labels []string) (string, error) {
	if len(labels) == 0 {
		return "[]", nil
	}

	raw, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("failed to marshal labels: %w", err)
	}

	return string(raw), nil
}

func decodeLabels(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}

	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal labels: %w", err)
	}

	return labels, nil
}
