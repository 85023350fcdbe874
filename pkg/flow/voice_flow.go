package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-story-kit/pkg/domain"
	"github.com/shouni/go-story-kit/pkg/speech"
)

// VoiceFlow は、シーンのナレーション音声を合成する排他的フローなのだ。
// 同時に動く合成は常に1本だけで、進行中の再要求は既存の状態を壊さず
// ErrNarrationActive の no-op として弾かれるのだ。
type VoiceFlow struct {
	model  SpeechModel
	voice  string
	clips  *cache.Cache
	active atomic.Bool
}

// NewVoiceFlow は新しい VoiceFlow インスタンスを生成します。
func NewVoiceFlow(model SpeechModel, voice string, clipCache *cache.Cache) *VoiceFlow {
	return &VoiceFlow{
		model: model,
		voice: voice,
		clips: clipCache,
	}
}

// Narrate は指定シーンのナレーションをWAVアセットとして返します。
// 合成済みのシーンはキャッシュから返され、モデル呼び出しは発生しません。
func (f *VoiceFlow) Narrate(ctx context.Context, scene domain.Scene) (*domain.AssetRef, error) {
	if cached, found := f.clips.Get(scene.Label()); found {
		slog.DebugContext(ctx, "合成済みのナレーションを返すのだ", "scene", scene.Label())
		return cached.(*domain.AssetRef), nil
	}

	if !f.active.CompareAndSwap(false, true) {
		return nil, ErrNarrationActive
	}
	defer f.active.Store(false)

	slog.InfoContext(ctx, "ナレーションを合成します", "scene", scene.Label(), "voice", f.voice)

	pcm, err := f.model.Synthesize(ctx, scene.Narration)
	if err != nil {
		return nil, fmt.Errorf("ナレーションの合成に失敗しました (%s): %w", scene.Label(), err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("ナレーションの合成に失敗しました (%s): %w", scene.Label(), ErrEmptyPayload)
	}

	ref := &domain.AssetRef{
		Label:    scene.Label(),
		Data:     speech.EncodeWAV(pcm, speech.DefaultSampleRate),
		MimeType: "audio/wav",
		Voice:    f.voice,
	}
	f.clips.Set(scene.Label(), ref, cache.NoExpiration)
	return ref, nil
}
