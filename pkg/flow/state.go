package flow

import (
	"fmt"
	"log/slog"
	"sync"
)

// Phase は生成フローの状態機械における局面を表すタグ付き列挙値です。
// 真偽値フラグの組み合わせではなく明示的な状態として扱うことで、
// 「主結果なしでメディア生成中」のような不正な状態を表現不能にします。
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrimaryInFlight
	PhaseMediaInFlight
	PhaseComplete
	PhaseFailed
)

// String は局面名を返します。
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrimaryInFlight:
		return "primary_in_flight"
	case PhaseMediaInFlight:
		return "media_in_flight"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Status は現在の局面と進捗位置（i / N）の組です。
type Status struct {
	Phase Phase
	Index int
	Total int
}

// ProgressFunc は進捗更新の通知を受け取るコールバックです。
type ProgressFunc func(Status)

// Tracker は状態遷移の検証と進捗通知、多重投入の抑止を担うのだ。
// 新しい投入は Begin で予約され、フローが完了か失敗するまで
// 次の投入はエラーで弾かれるのだ（キャンセル機構は持たないのだよ）。
type Tracker struct {
	mu     sync.Mutex
	status Status
	notify ProgressFunc
}

// NewTracker は新しい Tracker を生成します。notify は nil でも構いません。
func NewTracker(notify ProgressFunc) *Tracker {
	return &Tracker{notify: notify}
}

// Status は現在の状態のスナップショットを返します。
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Begin は主呼び出しの開始を予約します。実行中の場合は ErrBusy を返します。
func (t *Tracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.status.Phase {
	case PhaseIdle, PhaseComplete, PhaseFailed:
		t.set(Status{Phase: PhasePrimaryInFlight})
		return nil
	default:
		return ErrBusy
	}
}

// StartMedia は主結果の確定後に従属メディア列の生成開始を宣言します。
// 主呼び出し中でなければ不正遷移です。
func (t *Tracker) StartMedia(total int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Phase != PhasePrimaryInFlight {
		return t.invalidTransition(PhaseMediaInFlight)
	}
	t.set(Status{Phase: PhaseMediaInFlight, Index: 0, Total: total})
	return nil
}

// Advance は従属列の現在位置を進めます。進捗は単調増加のみ許されます。
func (t *Tracker) Advance(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Phase != PhaseMediaInFlight {
		return t.invalidTransition(PhaseMediaInFlight)
	}
	if index <= t.status.Index || index > t.status.Total {
		return fmt.Errorf("進捗位置が単調増加になっていません (現在 %d, 指定 %d, 総数 %d)",
			t.status.Index, index, t.status.Total)
	}
	t.set(Status{Phase: PhaseMediaInFlight, Index: index, Total: t.status.Total})
	return nil
}

// Complete はフローの完了を記録し、進捗状態をクリアします。
// 一部のメディアが欠けていても完了は完了です。
func (t *Tracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set(Status{Phase: PhaseComplete})
}

// Fail はフローの失敗を記録します。以後は新しい投入を受け付けます。
func (t *Tracker) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set(Status{Phase: PhaseFailed})
}

// set は状態を更新して通知します。呼び出し側がロックを保持していること。
func (t *Tracker) set(s Status) {
	t.status = s
	if t.notify != nil {
		t.notify(s)
	}
	if s.Phase == PhaseMediaInFlight && s.Index > 0 {
		slog.Info("メディア生成の進捗なのだ", "index", s.Index, "total", s.Total)
	}
}

func (t *Tracker) invalidTransition(to Phase) error {
	return fmt.Errorf("不正な状態遷移です (%s -> %s)", t.status.Phase, to)
}
