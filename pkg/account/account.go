// Package account は、利用者の登録と認証、単一セッションの管理を担います。
// 認証に失敗した理由（未登録か、秘密情報の不一致か）は呼び出し側に区別させません。
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// 識別子と秘密情報の受理条件です。
const (
	IdentitySuffix = "@gmail.com"
	MinSecretLen   = 6
)

var (
	// ErrInvalidIdentity は、識別子が受理条件を満たさないことを示します。
	ErrInvalidIdentity = errors.New("identity must end with " + IdentitySuffix)

	// ErrSecretTooShort は、秘密情報が短すぎることを示します。
	ErrSecretTooShort = fmt.Errorf("secret must be at least %d characters", MinSecretLen)

	// ErrDuplicateIdentity は、同じ識別子が既に登録済みであることを示します。
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrInvalidCredentials は認証失敗を示します。未登録の識別子でも
	// 秘密情報の不一致でも同じエラーを返し、登録の有無を漏らしません。
	ErrInvalidCredentials = errors.New("wrong identity or secret")
)

// Gate は、ストアを背後に持つ登録・認証の入口となる構造体です。
type Gate struct {
	store Store
}

// NewGate は新しい Gate インスタンスを生成します。
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// ValidateIdentity は識別子の受理条件を検査します。
func ValidateIdentity(identity string) error {
	if !strings.HasSuffix(identity, IdentitySuffix) || len(identity) <= len(IdentitySuffix) {
		return ErrInvalidIdentity
	}
	return nil
}

// ValidateSecret は秘密情報の受理条件を検査します。
func ValidateSecret(secret string) error {
	if len(secret) < MinSecretLen {
		return ErrSecretTooShort
	}
	return nil
}

// Register は新しい利用者を登録するのだ。検査はストアに触れる前に行い、
// 不正な入力は永続層まで届かないのだ。
func (g *Gate) Register(ctx context.Context, identity, secret string) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	if err := ValidateSecret(secret); err != nil {
		return err
	}

	if err := g.store.Insert(ctx, Credential{Identity: identity, Secret: secret}); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("利用者の登録に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "利用者を登録したのだ", "identity", identity)
	return g.store.SetSession(ctx, identity)
}

// Login は識別子と秘密情報を照合してセッションを開始します。
// 受理条件の検査はストアに触れる前に行い、照合の失敗理由は
// ErrInvalidCredentials に一本化されます。
func (g *Gate) Login(ctx context.Context, identity, secret string) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	if err := ValidateSecret(secret); err != nil {
		return err
	}

	cred, err := g.store.Lookup(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("利用者の照会に失敗しました: %w", err)
	}
	if cred.Secret != secret {
		return ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "ログインしたのだ", "identity", identity)
	return g.store.SetSession(ctx, identity)
}

// Logout は現在のセッションを破棄します。セッションが無くてもエラーにしません。
func (g *Gate) Logout(ctx context.Context) error {
	return g.store.ClearSession(ctx)
}

// Current はログイン中の識別子を返します。未ログインなら ErrNotFound です。
func (g *Gate) Current(ctx context.Context) (string, error) {
	return g.store.CurrentSession(ctx)
}
