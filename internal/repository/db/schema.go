package db

const sqliteUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    refresh_token TEXT,
    created_at TIMESTAMP NOT NULL
);
`

const sqliteExpenses = `
CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    amount_cents INTEGER NOT NULL,
    category TEXT NOT NULL,
    spent_on TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const postgresUsers = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    refresh_token TEXT,
    created_at TIMESTAMPTZ NOT NULL
);
`

const postgresExpenses = `
CREATE TABLE IF NOT EXISTS expenses (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    amount_cents BIGINT NOT NULL,
    category TEXT NOT NULL,
    spent_on TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
`

// Shared by both dialects.
const (
	indexUsersRefreshToken = `CREATE INDEX IF NOT EXISTS idx_users_refresh_token ON users (refresh_token);`
	indexExpensesUserDate  = `CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, spent_on);`
)

func schemaFor(d Dialect) []string {
	if d == Postgres {
		return []string{postgresUsers, postgresExpenses, indexUsersRefreshToken, indexExpensesUserDate}
	}
	return []string{sqliteUsers, sqliteExpenses, indexUsersRefreshToken, indexExpensesUserDate}
}
