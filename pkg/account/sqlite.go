package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore は Store のSQLite実装です。セッションは単一行で管理され、
// 同時にログインできる利用者は常に1人です。
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore は指定パスのデータベースを開き、スキーマを整えます。
// 親ディレクトリが無ければ作成します。
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %s: %w", pragma, execErr)
		}
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			identity TEXT PRIMARY KEY,
			secret   TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE TABLE IF NOT EXISTS session (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			identity TEXT NOT NULL REFERENCES accounts(identity)
		)`,
	}
	for _, stmt := range schema {
		if _, execErr := db.ExecContext(ctx, stmt); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", execErr)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Insert は新しい利用者を保存します。
func (s *SQLiteStore) Insert(ctx context.Context, cred Credential) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (identity, secret) VALUES (?, ?)", cred.Identity, cred.Secret)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// Lookup は識別子で利用者を検索します。
func (s *SQLiteStore) Lookup(ctx context.Context, identity string) (Credential, error) {
	var cred Credential
	row := s.db.QueryRowContext(ctx,
		"SELECT identity, secret FROM accounts WHERE identity = ?", identity)
	if err := row.Scan(&cred.Identity, &cred.Secret); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credential{}, ErrNotFound
		}
		return Credential{}, fmt.Errorf("lookup account: %w", err)
	}
	return cred, nil
}

// SetSession は単一のセッション行を置き換えます。
func (s *SQLiteStore) SetSession(ctx context.Context, identity string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, identity) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET identity = excluded.identity`, identity)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// CurrentSession はログイン中の識別子を返します。
func (s *SQLiteStore) CurrentSession(ctx context.Context) (string, error) {
	var identity string
	row := s.db.QueryRowContext(ctx, "SELECT identity FROM session WHERE id = 1")
	if err := row.Scan(&identity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("current session: %w", err)
	}
	return identity, nil
}

// ClearSession はセッション行を削除します。
func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation は一意制約違反かをドライバ非依存の文字列で判定します。
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
