package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/config"
	"github.com/shouni/go-story-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// voiceCmd は、保存済みストーリーのナレーションを音声化するのだ。
var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "保存済みストーリーのナレーションを音声合成しますなのだ。",
	Long: `generate が保存した story.json を読み込み、指定シーンの
ナレーションをWAVファイルとして合成するのだ。`,
	RunE: voiceCommand,
}

func init() {
	voiceCmd.Flags().StringVarP(&opts.StoryFile, "from", "f", config.DefaultStoryFile, "保存済み story.json のパスなのだ。")
	voiceCmd.Flags().IntVarP(&opts.SceneNumber, "scene", "s", 1, "音声化するシーン番号なのだ。")
}

func voiceCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := loadConfig()

	slog.Info("ナレーション合成を開始するのだ！", "from", opts.StoryFile, "scene", opts.SceneNumber)

	if err := pipeline.ExecuteVoice(ctx, cfg); err != nil {
		return fmt.Errorf("ナレーション合成中にエラーが発生したのだ: %w", err)
	}

	return nil
}
