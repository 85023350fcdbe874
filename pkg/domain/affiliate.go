package domain

// アフィリエイト用シーン数の許容範囲です。
const (
	MinPromoScenes = 1
	MaxPromoScenes = 8
)

// PromptStyle はプロモーション台本の構成スタイルです。
type PromptStyle string

const (
	StyleProblemSolution PromptStyle = "problem/solution"
	StyleFashion         PromptStyle = "Fashion / Lifestyle"
	StyleNaturalVlog     PromptStyle = "Vlog Ulasan Natural"
	StyleUnboxing        PromptStyle = "Unboxing Produk"
	DefaultPromptStyle               = StyleProblemSolution
)

// AffiliateRequest は、商品プロモーション生成の要求内容です。
// 参照画像はローカルパスまたは gs:// パスで受け取り、読み込みはアダプター層が担います。
type AffiliateRequest struct {
	ProductName      string      `json:"product_name"`
	Style            PromptStyle `json:"style"`
	NumScenes        int         `json:"num_scenes"`
	Instructions     string      `json:"instructions"`
	ProductImagePath string      `json:"product_image_path"`
	ModelImagePath   string      `json:"model_image_path"`
}

// Clamp はシーン数を許容範囲に丸め、未指定のスタイルをデフォルトで埋めるのだ。
func (r *AffiliateRequest) Clamp() {
	if r.NumScenes < MinPromoScenes {
		r.NumScenes = MinPromoScenes
	}
	if r.NumScenes > MaxPromoScenes {
		r.NumScenes = MaxPromoScenes
	}
	if r.Style == "" {
		r.Style = DefaultPromptStyle
	}
}

// PromoAsset はプロモーション1カット分の生成指示（ラベル + 各種プロンプト）です。
type PromoAsset struct {
	Label       string `json:"label"`
	ImagePrompt string `json:"imagePrompt"`
	VideoPrompt string `json:"videoPrompt"`
}

// AffiliateResult は AI モデルから返されるプロモーション台本全体の構造です。
// ストーリー結果と同じ厳密さで型付けします（要約 + 順序付きアセット列）。
type AffiliateResult struct {
	Summary string       `json:"summary"`
	Caption string       `json:"caption"`
	Assets  []PromoAsset `json:"assets"`
}

// Labels は全アセットのラベルを宣言順で返します。
func (r AffiliateResult) Labels() []string {
	labels := make([]string, 0, len(r.Assets))
	for _, a := range r.Assets {
		labels = append(labels, a.Label)
	}
	return labels
}
