package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/bwmfi/market"
	"github.com/rustyeddy/bwmfi/params"
)

var ErrNoRuns = errors.New("store: no saved runs")

// SQLite keeps snapshots of parameter registries. Each Save writes one run.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// Save writes every pair in reg under a new run id.
func (s *SQLite) Save(ctx context.Context, reg *params.Registry) (string, error) {
	created := s.now().UTC()
	runID, err := newRunID(created)
	if err != nil {
		return "", fmt.Errorf("run id: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO param_runs (run_id, created_at) VALUES (?, ?)`,
		runID, created,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	var insertErr error
	reg.Range(func(k params.Key, p params.Pair) {
		if insertErr == nil {
			insertErr = insertPair(ctx, tx, runID, k, p)
		}
	})
	if insertErr != nil {
		return "", insertErr
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

func insertPair(ctx context.Context, tx *sql.Tx, runID string, k params.Key, p params.Pair) error {
	ind, stg := p.Indicator, p.Strategy

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO indicator_params
		(run_id, symbol, timeframe, shift, max_modes, source_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, k.Symbol, string(k.Timeframe), ind.Shift, ind.MaxModes, ind.SourceType,
	); err != nil {
		return fmt.Errorf("insert indicator %s: %w", k, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO strategy_params
		(run_id, symbol, timeframe, lot_size, signal_open_method, signal_open_filter,
		 signal_open_level, signal_open_boost, signal_close_method, signal_close_level,
		 price_stop_method, price_stop_level, tick_filter_method, max_spread, shift, order_close_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, k.Symbol, string(k.Timeframe), stg.LotSize, stg.SignalOpenMethod, stg.SignalOpenFilter,
		stg.SignalOpenLevel, stg.SignalOpenBoost, stg.SignalCloseMethod, stg.SignalCloseLevel,
		stg.PriceStopMethod, stg.PriceStopLevel, stg.TickFilterMethod, stg.MaxSpread, stg.Shift, stg.OrderCloseTime,
	); err != nil {
		return fmt.Errorf("insert strategy %s: %w", k, err)
	}
	return nil
}

// Load rebuilds the registry saved under runID.
func (s *SQLite) Load(ctx context.Context, runID string) (*params.Registry, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM param_runs WHERE run_id = ?`, runID,
	).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("run %s: %w", runID, sql.ErrNoRows)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.symbol, i.timeframe, i.shift, i.max_modes, i.source_type,
		       s.lot_size, s.signal_open_method, s.signal_open_filter, s.signal_open_level,
		       s.signal_open_boost, s.signal_close_method, s.signal_close_level,
		       s.price_stop_method, s.price_stop_level, s.tick_filter_method, s.max_spread,
		       s.shift, s.order_close_time
		FROM indicator_params i
		JOIN strategy_params s
		  ON s.run_id = i.run_id AND s.symbol = i.symbol AND s.timeframe = i.timeframe
		WHERE i.run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := map[string]params.Table{}
	for rows.Next() {
		var (
			sym, tf string
			ind     params.IndicatorParams
			stg     params.StrategyParams
		)
		if err := rows.Scan(&sym, &tf, &ind.Shift, &ind.MaxModes, &ind.SourceType,
			&stg.LotSize, &stg.SignalOpenMethod, &stg.SignalOpenFilter, &stg.SignalOpenLevel,
			&stg.SignalOpenBoost, &stg.SignalCloseMethod, &stg.SignalCloseLevel,
			&stg.PriceStopMethod, &stg.PriceStopLevel, &stg.TickFilterMethod, &stg.MaxSpread,
			&stg.Shift, &stg.OrderCloseTime,
		); err != nil {
			return nil, err
		}
		if tables[sym] == nil {
			tables[sym] = params.Table{}
		}
		tables[sym][market.Timeframe(tf)] = params.Overrides{
			Indicator: ind.Overrides(),
			Strategy:  stg.Overrides(),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	opts := make([]params.Option, 0, len(tables))
	for sym, t := range tables {
		opts = append(opts, params.WithTable(sym, t))
	}
	return params.NewRegistry(opts...)
}

// Latest returns the most recently saved run id.
func (s *SQLite) Latest(ctx context.Context) (string, error) {
	var runID string
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id FROM param_runs ORDER BY run_id DESC LIMIT 1`,
	).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRuns
	}
	return runID, err
}

// Runs lists saved run ids, oldest first.
func (s *SQLite) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id FROM param_runs ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
