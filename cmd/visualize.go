package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/config"
	"github.com/shouni/go-story-kit/internal/pipeline"
	"github.com/shouni/go-story-kit/pkg/flow"

	"github.com/spf13/cobra"
)

// visualizeCmd は、保存済みストーリーの1シーンを画像化するのだ。
var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "保存済みストーリーのシーンを画像化しますなのだ。",
	Long: `generate が保存した story.json を読み込み、指定シーンの
構造化プロンプトから画像を生成するのだ。同じシーンと比率の組は
キャッシュされ、--refresh 指定のときだけ作り直すのだよ。`,
	RunE: visualizeCommand,
}

func init() {
	visualizeCmd.Flags().StringVarP(&opts.StoryFile, "from", "f", config.DefaultStoryFile, "保存済み story.json のパスなのだ。")
	visualizeCmd.Flags().IntVarP(&opts.SceneNumber, "scene", "s", 1, "画像化するシーン番号なのだ。")
	visualizeCmd.Flags().StringVar(&opts.AspectRatio, "ratio", flow.AspectPortrait, "画像のアスペクト比なのだ。")
	visualizeCmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "キャッシュを無視して作り直すのだ。")
}

func visualizeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := loadConfig()

	slog.Info("シーン画像化を開始するのだ！",
		"from", opts.StoryFile,
		"scene", opts.SceneNumber,
		"ratio", opts.AspectRatio,
		"refresh", opts.Refresh)

	if err := pipeline.ExecuteVisualize(ctx, cfg); err != nil {
		return fmt.Errorf("シーン画像化中にエラーが発生したのだ: %w", err)
	}

	return nil
}
