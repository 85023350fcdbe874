package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-story-kit/internal/config"
	"github.com/shouni/go-story-kit/pkg/workflow"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は CLI フラグの値を集約する実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.ScriptModel, "model", workflow.DefaultScriptModel, "脚本生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", workflow.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
// account 系のコマンドはAPIを呼ばないので、キーのチェックを免除するのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if isAccountCommand(cmd) {
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

func isAccountCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "account" {
			return true
		}
	}
	return false
}

// loadConfig は環境変数とフラグから実行設定を組み立てるのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.ScriptModel = opts.ScriptModel
	cfg.ImageModel = opts.ImageModel
	cfg.Options = opts
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-story-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		affiliateCmd,
		visualizeCmd,
		voiceCmd,
		coversCmd,
		accountCmd,
	)
}
