package flow

import "errors"

var (
	// ErrBusy は、別のフローが実行中のため新しい投入を受け付けられないことを示します。
	ErrBusy = errors.New("another flow is in flight")

	// ErrNarrationActive は、ナレーション合成が既に進行中であることを示します。
	// この場合の要求は no-op であり、既存の状態は一切変化しません。
	ErrNarrationActive = errors.New("narration already active")

	// ErrEmptyPayload は、プロバイダ応答にメディア本体が含まれないことを示します。
	ErrEmptyPayload = errors.New("empty media payload")
)
