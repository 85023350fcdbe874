package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound は、識別子またはセッションが存在しないことを示します。
	ErrNotFound = errors.New("not found")

	// ErrDuplicate は、同一キーの挿入が衝突したことを示します。
	ErrDuplicate = errors.New("duplicate entry")
)

// Credential は登録済み利用者の1レコードです。
type Credential struct {
	Identity string
	Secret   string
}

// Store は利用者とセッションの永続化を抽象化するインターフェースです。
type Store interface {
	// Insert は新しい利用者を保存します。識別子の衝突は ErrDuplicate です。
	Insert(ctx context.Context, cred Credential) error

	// Lookup は識別子で利用者を検索します。未登録なら ErrNotFound です。
	Lookup(ctx context.Context, identity string) (Credential, error)

	// SetSession は現在のセッションを指定の識別子で置き換えます。
	SetSession(ctx context.Context, identity string) error

	// CurrentSession はログイン中の識別子を返します。未ログインなら ErrNotFound です。
	CurrentSession(ctx context.Context) (string, error)

	// ClearSession は現在のセッションを破棄します。
	ClearSession(ctx context.Context) error

	Close() error
}
