package db

import "testing"

func TestParseDialect(t *testing.T) {
	cases := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"", SQLite, false},
		{"sqlite", SQLite, false},
		{" SQLite3 ", SQLite, false},
		{"postgres", Postgres, false},
		{"pgx", Postgres, false},
		{"mysql", "", true},
	}
	for _, tc := range cases {
		got, err := ParseDialect(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDialect(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDialect(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDialect(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDialect_Rebind(t *testing.T) {
	q := `UPDATE users SET refresh_token = ? WHERE id = ? AND note <> '?' AND refresh_token = ?`

	if got := SQLite.Rebind(q); got != q {
		t.Fatalf("sqlite rebind changed query: %q", got)
	}

	want := `UPDATE users SET refresh_token = $1 WHERE id = $2 AND note <> '?' AND refresh_token = $3`
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("postgres rebind:\n got %q\nwant %q", got, want)
	}
}

func TestOpen_SQLiteInMemoryAppliesSchema(t *testing.T) {
	conn, d, err := Open(Config{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	if d != SQLite {
		t.Fatalf("dialect = %q, want sqlite", d)
	}
	for _, table := range []string{"users", "expenses"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// schema is idempotent
	if err := ensureSchema(conn, d); err != nil {
		t.Fatalf("second ensureSchema: %v", err)
	}
}

func TestOpen_PostgresRequiresDSN(t *testing.T) {
	if _, _, err := Open(Config{Driver: "postgres"}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
