package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/builder"
	"github.com/shouni/go-story-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	accountIdentity string
	accountSecret   string
)

// accountCmd は、利用者の登録と認証を束ねる親コマンドなのだ。
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "利用者の登録・ログイン・ログアウトを行いますなのだ。",
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "新しい利用者を登録してログインしますなのだ。",
	RunE:  accountRegisterCommand,
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "登録済みの利用者でログインしますなのだ。",
	RunE:  accountLoginCommand,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "現在のセッションを破棄しますなのだ。",
	RunE:  accountLogoutCommand,
}

var accountWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "ログイン中の利用者を表示しますなのだ。",
	RunE:  accountWhoamiCommand,
}

func init() {
	for _, c := range []*cobra.Command{accountRegisterCmd, accountLoginCmd} {
		c.Flags().StringVarP(&accountIdentity, "identity", "i", "", "識別子（@gmail.com で終わること）なのだ。")
		c.Flags().StringVarP(&accountSecret, "secret", "s", "", "秘密情報（6文字以上）なのだ。")
	}
	accountCmd.AddCommand(accountRegisterCmd, accountLoginCmd, accountLogoutCmd, accountWhoamiCmd)
}

func accountRegisterCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gate, closeStore, err := builder.OpenAccountGate(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := gate.Register(ctx, accountIdentity, accountSecret); err != nil {
		return fmt.Errorf("登録に失敗したのだ: %w", err)
	}

	slog.Info("登録してログインしたのだ！", "identity", accountIdentity)
	return nil
}

func accountLoginCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gate, closeStore, err := builder.OpenAccountGate(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := gate.Login(ctx, accountIdentity, accountSecret); err != nil {
		return fmt.Errorf("ログインに失敗したのだ: %w", err)
	}

	slog.Info("ログインしたのだ！", "identity", accountIdentity)
	return nil
}

func accountLogoutCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gate, closeStore, err := builder.OpenAccountGate(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := gate.Logout(ctx); err != nil {
		return fmt.Errorf("ログアウトに失敗したのだ: %w", err)
	}

	slog.Info("ログアウトしたのだ")
	return nil
}

func accountWhoamiCommand(cmd *cobra.Command, args []string) error {
	identity, err := pipeline.RequireSession(cmd.Context(), loadConfig())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), identity)
	return nil
}
