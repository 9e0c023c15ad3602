package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wheelpicker/internal/region"
)

// ErrNoDataset is returned by LoadRegions when nothing has been imported.
var ErrNoDataset = errors.New("no region dataset imported")

// RegionImport describes the dataset currently held in the cache.
type RegionImport struct {
	Origin     string       `json:"origin"`
	ImportedAt time.Time    `json:"importedAt"`
	Stats      region.Stats `json:"stats"`
}

// ImportRegions replaces the cached dataset with ds, keeping list order.
func (s Store) ImportRegions(ctx context.Context, ds *region.Dataset, origin string) (RegionImport, error) {
	if ds == nil || ds.Len() == 0 {
		return RegionImport{}, errors.New("empty region dataset")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return RegionImport{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return RegionImport{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM areas`, `DELETE FROM cities`, `DELETE FROM provinces`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return RegionImport{}, err
		}
	}
	for pi, p := range ds.Provinces() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO provinces(code, name, pos) VALUES(?, ?, ?)`, p.Code, p.Name, pi); err != nil {
			return RegionImport{}, fmt.Errorf("province %s: %w", p.Code, err)
		}
		for ci, c := range p.Cities {
			if _, err := tx.ExecContext(ctx, `INSERT INTO cities(code, province_code, name, pos) VALUES(?, ?, ?, ?)`, c.Code, p.Code, c.Name, ci); err != nil {
				return RegionImport{}, fmt.Errorf("city %s: %w", c.Code, err)
			}
			for ai, a := range c.Areas {
				if _, err := tx.ExecContext(ctx, `INSERT INTO areas(code, city_code, name, pos) VALUES(?, ?, ?, ?)`, a.Code, c.Code, a.Name, ai); err != nil {
					return RegionImport{}, fmt.Errorf("area %s: %w", a.Code, err)
				}
			}
		}
	}

	now := s.now()
	if err := writeMeta(ctx, tx, "regions_origin", origin); err != nil {
		return RegionImport{}, err
	}
	if err := writeMeta(ctx, tx, "regions_imported_at_unixms", strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return RegionImport{}, err
	}
	if err := tx.Commit(); err != nil {
		return RegionImport{}, err
	}
	return RegionImport{Origin: origin, ImportedAt: now, Stats: ds.Stats()}, nil
}

// LoadRegions rebuilds the cached dataset. It returns ErrNoDataset when the
// cache is empty.
func (s Store) LoadRegions(ctx context.Context) (*region.Dataset, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var provinces []region.Province
	pIdx := map[string]int{}
	rows, err := db.QueryContext(ctx, `SELECT code, name FROM provinces ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var p region.Province
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		pIdx[p.Code] = len(provinces)
		provinces = append(provinces, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	if len(provinces) == 0 {
		return nil, ErrNoDataset
	}

	type cityRef struct{ p, c int }
	cIdx := map[string]cityRef{}
	rows, err = db.QueryContext(ctx, `SELECT code, province_code, name FROM cities ORDER BY province_code, pos`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c region.City
		var pcode string
		if err := rows.Scan(&c.Code, &pcode, &c.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		pi, ok := pIdx[pcode]
		if !ok {
			continue
		}
		cIdx[c.Code] = cityRef{p: pi, c: len(provinces[pi].Cities)}
		provinces[pi].Cities = append(provinces[pi].Cities, c)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `SELECT code, city_code, name FROM areas ORDER BY city_code, pos`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var a region.Area
		var ccode string
		if err := rows.Scan(&a.Code, &ccode, &a.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		ref, ok := cIdx[ccode]
		if !ok {
			continue
		}
		city := &provinces[ref.p].Cities[ref.c]
		city.Areas = append(city.Areas, a)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return region.NewDataset(provinces)
}

// RegionInfo reports what the cache holds; ok is false when it is empty.
func (s Store) RegionInfo(ctx context.Context) (info RegionImport, ok bool, err error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return RegionImport{}, false, err
	}
	defer db.Close()

	counts := []struct {
		q   string
		dst *int
	}{
		{`SELECT COUNT(1) FROM provinces`, &info.Stats.Provinces},
		{`SELECT COUNT(1) FROM cities`, &info.Stats.Cities},
		{`SELECT COUNT(1) FROM areas`, &info.Stats.Areas},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.q).Scan(c.dst); err != nil {
			return RegionImport{}, false, err
		}
	}
	if info.Stats.Provinces == 0 {
		return RegionImport{}, false, nil
	}
	if info.Origin, err = readMeta(ctx, db, "regions_origin"); err != nil {
		return RegionImport{}, false, err
	}
	ms, err := readMeta(ctx, db, "regions_imported_at_unixms")
	if err != nil {
		return RegionImport{}, false, err
	}
	if n, perr := strconv.ParseInt(ms, 10, 64); perr == nil {
		info.ImportedAt = time.UnixMilli(n).UTC()
	}
	return info, true, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

// SQLiteSource serves the cached dataset, or Fallback while the cache is
// empty.
type SQLiteSource struct {
	Store    Store
	Fallback region.Source
}

func (s SQLiteSource) Name() string { return "sqlite:" + s.Store.SQLitePath() }

func (s SQLiteSource) Load(ctx context.Context) (*region.Dataset, error) {
	ds, err := s.Store.LoadRegions(ctx)
	if errors.Is(err, ErrNoDataset) && s.Fallback != nil {
		return s.Fallback.Load(ctx)
	}
	return ds, err
}
