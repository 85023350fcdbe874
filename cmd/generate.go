package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/pipeline"
	"github.com/shouni/go-story-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによるストーリー構成案の生成と保存を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "AIに教育ストーリーを生成させますなのだ。",
	Long: `トピックを解析し、ナレーションと構造化ビジュアルプロンプトを持つ
シーン列を生成するのだ。末尾には出典検証シーンが必ず付くのだよ。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.Title, "title", "t", "", "ストーリーのトピックなのだ。")
	generateCmd.Flags().IntVarP(&opts.NumScenes, "scenes", "n", 4, "本編シーン数なのだ（出典検証シーンは別枠で追加されるのだ）。")
	generateCmd.Flags().StringVar(&opts.VisualStyle, "style", string(domain.DefaultStyle), "生成画像の画風なのだ。")
	generateCmd.Flags().StringVar(&opts.Language, "language", string(domain.DefaultLanguage), "ナレーションの言語なのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Title == "" {
		return fmt.Errorf("トピック（--title）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("ストーリー生成パイプラインを起動するのだ！",
		"title", opts.Title,
		"scenes", opts.NumScenes,
		"text_model", cfg.ScriptModel,
		"output", opts.OutputDir)

	if err := pipeline.ExecuteStory(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
