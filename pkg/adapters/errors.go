package adapters

import "errors"

var (
	// ErrEmptyResponse は、モデル応答にテキスト本体が含まれないことを示します。
	ErrEmptyResponse = errors.New("empty model response")

	// ErrEmptyPayload は、モデル応答にメディアデータが含まれないことを示します。
	ErrEmptyPayload = errors.New("empty media payload")
)
