package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/config"
	"github.com/shouni/go-story-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// coversCmd は、保存済みストーリーのカバー画像を生成するのだ。
var coversCmd = &cobra.Command{
	Use:   "covers",
	Short: "保存済みストーリーのカバー画像を縦横2枚生成しますなのだ。",
	Long: `generate が保存した story.json を読み込み、縦型（ショート動画向け）と
横型（サムネイル向け）のカバー画像を並行生成するのだ。`,
	RunE: coversCommand,
}

func init() {
	coversCmd.Flags().StringVarP(&opts.StoryFile, "from", "f", config.DefaultStoryFile, "保存済み story.json のパスなのだ。")
}

func coversCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := loadConfig()

	slog.Info("カバー生成を開始するのだ！", "from", opts.StoryFile)

	if err := pipeline.ExecuteCovers(ctx, cfg); err != nil {
		return fmt.Errorf("カバー生成中にエラーが発生したのだ: %w", err)
	}

	return nil
}
