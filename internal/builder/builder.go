package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"

	"github.com/shouni/go-story-kit/internal/config"
	"github.com/shouni/go-story-kit/pkg/account"
	"github.com/shouni/go-story-kit/pkg/workflow"
)

// BuildAppContext は、共有クライアント群とフロービルダーを一度だけ初期化して
// アプリケーションコンテキストを組み立てるのだ。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	wcfg := cfg.WorkflowConfig()

	timeout := wcfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := workflow.InitializeAIClient(ctx, wcfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}
	genaiClient, err := workflow.InitializeGenAIClient(ctx, wcfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	flows, err := workflow.NewBuilder(wcfg, httpClient, aiClient, genaiClient, reader, writer)
	if err != nil {
		return nil, fmt.Errorf("フロービルダーの初期化に失敗しました: %w", err)
	}

	appCtx := NewAppContext(cfg, reader, writer, flows)
	return &appCtx, nil
}

// OpenAccountGate は利用者データベースを開き、登録・認証の入口を返すのだ。
// 返される close は呼び出し側が必ず実行すること。
func OpenAccountGate(ctx context.Context, cfg *config.Config) (*account.Gate, func() error, error) {
	store, err := account.OpenSQLiteStore(ctx, cfg.AccountDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("利用者データベースのオープンに失敗しました: %w", err)
	}
	return account.NewGate(store), store.Close, nil
}
