package flow

import (
	"errors"
	"testing"
)

func TestTracker_Transitions(t *testing.T) {
	t.Run("通常の一巡が通るのだ", func(t *testing.T) {
		tracker := NewTracker(nil)

		if err := tracker.Begin(); err != nil {
			t.Fatalf("Begin に失敗したのだ: %v", err)
		}
		if err := tracker.StartMedia(3); err != nil {
			t.Fatalf("StartMedia に失敗したのだ: %v", err)
		}
		for i := 1; i <= 3; i++ {
			if err := tracker.Advance(i); err != nil {
				t.Fatalf("Advance(%d) に失敗したのだ: %v", i, err)
			}
		}
		tracker.Complete()

		if got := tracker.Status().Phase; got != PhaseComplete {
			t.Errorf("期待 %v, 実際 %v", PhaseComplete, got)
		}
	})

	t.Run("実行中の再投入は ErrBusy なのだ", func(t *testing.T) {
		tracker := NewTracker(nil)
		if err := tracker.Begin(); err != nil {
			t.Fatal(err)
		}
		if err := tracker.Begin(); !errors.Is(err, ErrBusy) {
			t.Errorf("ErrBusy を期待したのだ: %v", err)
		}
	})

	t.Run("完了後と失敗後は再投入できるのだ", func(t *testing.T) {
		tracker := NewTracker(nil)

		_ = tracker.Begin()
		tracker.Complete()
		if err := tracker.Begin(); err != nil {
			t.Errorf("完了後の再投入に失敗したのだ: %v", err)
		}

		tracker.Fail()
		if err := tracker.Begin(); err != nil {
			t.Errorf("失敗後の再投入に失敗したのだ: %v", err)
		}
	})

	t.Run("主呼び出しなしの StartMedia は不正遷移なのだ", func(t *testing.T) {
		tracker := NewTracker(nil)
		if err := tracker.StartMedia(2); err == nil {
			t.Error("エラーを期待したのだ")
		}
	})

	t.Run("進捗の巻き戻しと範囲超過は拒否されるのだ", func(t *testing.T) {
		tracker := NewTracker(nil)
		_ = tracker.Begin()
		_ = tracker.StartMedia(2)
		_ = tracker.Advance(2)

		if err := tracker.Advance(1); err == nil {
			t.Error("巻き戻しが通ってしまったのだ")
		}
		if err := tracker.Advance(3); err == nil {
			t.Error("総数超過が通ってしまったのだ")
		}
	})
}

func TestTracker_Notify(t *testing.T) {
	t.Run("遷移のたびに通知が飛ぶのだ", func(t *testing.T) {
		var seen []Status
		tracker := NewTracker(func(s Status) { seen = append(seen, s) })

		_ = tracker.Begin()
		_ = tracker.StartMedia(1)
		_ = tracker.Advance(1)
		tracker.Complete()

		wantPhases := []Phase{PhasePrimaryInFlight, PhaseMediaInFlight, PhaseMediaInFlight, PhaseComplete}
		if len(seen) != len(wantPhases) {
			t.Fatalf("通知回数が違うのだ: %d", len(seen))
		}
		for i, want := range wantPhases {
			if seen[i].Phase != want {
				t.Errorf("通知 %d: 期待 %v, 実際 %v", i, want, seen[i].Phase)
			}
		}
	})
}
