package store

const Schema = `
CREATE TABLE IF NOT EXISTS param_runs (
	run_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS indicator_params (
	run_id TEXT NOT NULL REFERENCES param_runs(run_id),
	symbol TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	shift INTEGER NOT NULL,
	max_modes INTEGER NOT NULL,
	source_type TEXT NOT NULL,
	PRIMARY KEY (run_id, symbol, timeframe)
);

CREATE TABLE IF NOT EXISTS strategy_params (
	run_id TEXT NOT NULL REFERENCES param_runs(run_id),
	symbol TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	lot_size REAL NOT NULL,
	signal_open_method INTEGER NOT NULL,
	signal_open_filter INTEGER NOT NULL,
	signal_open_level REAL NOT NULL,
	signal_open_boost INTEGER NOT NULL,
	signal_close_method INTEGER NOT NULL,
	signal_close_level REAL NOT NULL,
	price_stop_method INTEGER NOT NULL,
	price_stop_level REAL NOT NULL,
	tick_filter_method INTEGER NOT NULL,
	max_spread REAL NOT NULL,
	shift INTEGER NOT NULL,
	order_close_time INTEGER NOT NULL,
	PRIMARY KEY (run_id, symbol, timeframe)
);

CREATE INDEX IF NOT EXISTS idx_param_runs_created ON param_runs(created_at);
`
