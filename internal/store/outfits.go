package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/omara/internal/model"
)

// SQLite is a Gateway backed by the outfits and wear_items tables.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite returns a gateway over an open, migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db}
}

// Save replaces all stored outfits inside one transaction. The commit is the
// swap: if any statement fails, the previous rows survive.
func (s *SQLite) Save(ctx context.Context, outfits []model.Outfit) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return saveError(fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wear_items`); err != nil {
		return saveError(fmt.Errorf("clearing wear items: %w", err))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM outfits`); err != nil {
		return saveError(fmt.Errorf("clearing outfits: %w", err))
	}

	for pos, o := range outfits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO outfits (position, section_name, category, time_of_day) VALUES (?, ?, ?, ?)`,
			pos, o.SectionName, o.Category, o.TimeOfDay,
		)
		if err != nil {
			return saveError(fmt.Errorf("inserting outfit %d: %w", pos, err))
		}

		for j, w := range o.WearItems {
			var photo any
			if w.HasPhoto() {
				photo = w.Photo
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO wear_items (outfit_position, position, name, materials, photo) VALUES (?, ?, ?, ?, ?)`,
				pos, j, w.Name, w.Materials, photo,
			)
			if err != nil {
				return saveError(fmt.Errorf("inserting wear item %d of outfit %d: %w", j, pos, err))
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return saveError(fmt.Errorf("committing: %w", err))
	}
	return nil
}

// Load returns all stored outfits ordered by position.
func (s *SQLite) Load(ctx context.Context) ([]model.Outfit, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT position, section_name, category, time_of_day FROM outfits ORDER BY position`,
	)
	if err != nil {
		return nil, loadError(fmt.Errorf("listing outfits: %w", err))
	}
	defer rows.Close()

	var outfits []model.Outfit
	byPosition := make(map[int64]int)
	for rows.Next() {
		var pos int64
		var o model.Outfit
		if err := rows.Scan(&pos, &o.SectionName, &o.Category, &o.TimeOfDay); err != nil {
			return nil, loadError(fmt.Errorf("scanning outfit: %w", err))
		}
		byPosition[pos] = len(outfits)
		outfits = append(outfits, o)
	}
	if err := rows.Err(); err != nil {
		return nil, loadError(fmt.Errorf("listing outfits: %w", err))
	}
	rows.Close()

	wearRows, err := s.DB.QueryContext(ctx,
		`SELECT outfit_position, name, materials, photo FROM wear_items ORDER BY outfit_position, position`,
	)
	if err != nil {
		return nil, loadError(fmt.Errorf("listing wear items: %w", err))
	}
	defer wearRows.Close()

	for wearRows.Next() {
		var pos int64
		var name, materials string
		var photo []byte
		if err := wearRows.Scan(&pos, &name, &materials, &photo); err != nil {
			return nil, loadError(fmt.Errorf("scanning wear item: %w", err))
		}
		idx, ok := byPosition[pos]
		if !ok {
			return nil, loadError(fmt.Errorf("wear item references missing outfit %d", pos))
		}
		outfits[idx].WearItems = append(outfits[idx].WearItems, model.NewWearItem(name, materials, photo))
	}
	if err := wearRows.Err(); err != nil {
		return nil, loadError(fmt.Errorf("listing wear items: %w", err))
	}

	return outfits, nil
}
