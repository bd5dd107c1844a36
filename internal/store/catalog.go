package store

import (
	"context"
	"encoding/json"
	"fmt"

	"zerowaste/internal/models"

	sq "github.com/Masterminds/squirrel"
)

type catalogRow struct {
	ID          int    `db:"id"`
	Category    string `db:"category"`
	Submissions string `db:"submissions"`
}

// ListCatalog returns every catalog entry in id order. Submissions are stored
// as a JSON array; a value that is not one is read as a single label.
func (q *Queries) ListCatalog(ctx context.Context) ([]models.CatalogMission, error) {
	var rows []catalogRow
	if err := q.selectInto(ctx, &rows, q.sb.Select("id", "category", "submissions").
		From("catalog_missions").OrderBy("id")); err != nil {
		return nil, err
	}

	out := make([]models.CatalogMission, 0, len(rows))
	for _, r := range rows {
		m := models.CatalogMission{ID: r.ID, Category: r.Category}
		if err := json.Unmarshal([]byte(r.Submissions), &m.Submissions); err != nil {
			if r.Submissions != "" {
				m.Submissions = []string{r.Submissions}
			}
		}
		if m.Submissions == nil {
			m.Submissions = []string{}
		}
		m.Name = m.DisplayName()
		out = append(out, m)
	}
	return out, nil
}

// UpsertCatalog inserts or replaces the given entries by id.
func (q *Queries) UpsertCatalog(ctx context.Context, entries []models.CatalogMission) error {
	for _, e := range entries {
		subs, err := json.Marshal(e.Submissions)
		if err != nil {
			return fmt.Errorf("encode submissions for mission %d: %w", e.ID, err)
		}
		_, err = q.exec(ctx, q.sb.Insert("catalog_missions").
			Columns("id", "category", "submissions").
			Values(e.ID, e.Category, string(subs)).
			Suffix("ON CONFLICT (id) DO UPDATE SET category = excluded.category, submissions = excluded.submissions"))
		if err != nil {
			return err
		}
	}
	return nil
}

func (q *Queries) DeleteCatalogExcept(ctx context.Context, keep []int) error {
	_, err := q.exec(ctx, q.sb.Delete("catalog_missions").Where(sq.NotEq{"id": keep}))
	return err
}
