package domain

import "strings"

// AssetRef は、生成済みメディア（画像または音声）とその生成条件を保持します。
// 所有権は現在の結果を表示している側にあり、再生成や破棄で置き換えられます。
type AssetRef struct {
	Label       string `json:"label"`
	Data        []byte `json:"-"`
	MimeType    string `json:"mime_type"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Voice       string `json:"voice,omitempty"`
}

// FileExt は MIME タイプから保存用の拡張子を推定します。
func (a AssetRef) FileExt() string {
	switch {
	case strings.HasPrefix(a.MimeType, "image/png"):
		return ".png"
	case strings.HasPrefix(a.MimeType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(a.MimeType, "image/webp"):
		return ".webp"
	case strings.HasPrefix(a.MimeType, "audio/wav"):
		return ".wav"
	default:
		return ".bin"
	}
}
