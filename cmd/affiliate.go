package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-story-kit/internal/pipeline"
	"github.com/shouni/go-story-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// affiliateCmd は、商品プロモーション企画と画像列の生成を実行するのだ。
var affiliateCmd = &cobra.Command{
	Use:   "affiliate",
	Short: "商品画像からプロモ企画とプロモ画像を生成しますなのだ。",
	Long: `商品画像（任意でモデル画像も）を解釈してプロモ企画を立て、
企画に沿った縦型画像を1枚ずつ生成するのだ。途中で失敗した画像は
飛ばして続行するのだよ。`,
	RunE: affiliateCommand,
}

func init() {
	affiliateCmd.Flags().StringVarP(&opts.ProductName, "product", "p", "", "商品名なのだ。")
	affiliateCmd.Flags().StringVar(&opts.PromoStyle, "promo-style", string(domain.DefaultPromptStyle), "プロモの演出スタイルなのだ。")
	affiliateCmd.Flags().IntVarP(&opts.NumScenes, "scenes", "n", 3, "プロモシーン数なのだ。")
	affiliateCmd.Flags().StringVar(&opts.Instructions, "instructions", "", "追加の演出指示なのだ。")
	affiliateCmd.Flags().StringVar(&opts.ProductImage, "product-image", "", "商品画像のパス（ローカル or gs://...）なのだ。")
	affiliateCmd.Flags().StringVar(&opts.ModelImage, "model-image", "", "モデル画像のパス（任意）なのだ。")
}

func affiliateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ProductName == "" {
		return fmt.Errorf("商品名（--product）を指定してほしいのだ")
	}
	if opts.ProductImage == "" {
		return fmt.Errorf("商品画像（--product-image）を指定してほしいのだ")
	}

	cfg := loadConfig()

	slog.Info("プロモ生成パイプラインを起動するのだ！",
		"product", opts.ProductName,
		"style", opts.PromoStyle,
		"scenes", opts.NumScenes)

	if err := pipeline.ExecuteAffiliate(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
