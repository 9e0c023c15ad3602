package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Pick is one confirmed picker selection.
type Pick struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Store) RecordPick(ctx context.Context, kind, value, label string) (Pick, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return Pick{}, errors.New("pick kind is required")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Pick{}, err
	}
	defer db.Close()

	now := s.now()
	res, err := db.ExecContext(ctx, `INSERT INTO picks(kind, value, label, created_at_unixms) VALUES(?, ?, ?, ?)`,
		kind, value, label, now.UnixMilli())
	if err != nil {
		return Pick{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Pick{}, err
	}
	return Pick{ID: id, Kind: kind, Value: value, Label: label, CreatedAt: now.Truncate(time.Millisecond)}, nil
}

// RecentPicks returns picks newest first. An empty kind matches every kind;
// limit <= 0 means no limit.
func (s Store) RecentPicks(ctx context.Context, kind string, limit int) ([]Pick, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, kind, value, label, created_at_unixms FROM picks`
	var args []any
	if kind = strings.TrimSpace(kind); kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY created_at_unixms DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	out := []Pick{}
	for rows.Next() {
		var p Pick
		var ms int64
		if err := rows.Scan(&p.ID, &p.Kind, &p.Value, &p.Label, &ms); err != nil {
			_ = rows.Close()
			return nil, err
		}
		p.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return out, nil
}
