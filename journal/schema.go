// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	time TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	notional TEXT NOT NULL,
	price TEXT NOT NULL,
	order_id TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL,
	run_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger (
	key TEXT PRIMARY KEY,
	funds REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_time ON orders(time);
CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol);
`
