package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := EncodeWAV(pcm, DefaultSampleRate)

	t.Run("全体サイズはヘッダ44バイト+PCM長になるのだ", func(t *testing.T) {
		if len(wav) != 44+len(pcm) {
			t.Fatalf("期待 %d, 実際 %d", 44+len(pcm), len(wav))
		}
	})

	t.Run("RIFF/WAVEマジックが正しいのだ", func(t *testing.T) {
		if !bytes.Equal(wav[0:4], []byte("RIFF")) {
			t.Errorf("RIFF が見当たらないのだ: %q", wav[0:4])
		}
		if !bytes.Equal(wav[8:12], []byte("WAVE")) {
			t.Errorf("WAVE が見当たらないのだ: %q", wav[8:12])
		}
	})

	t.Run("フォーマットチャンクは16bitモノラルPCMなのだ", func(t *testing.T) {
		if format := binary.LittleEndian.Uint16(wav[20:22]); format != 1 {
			t.Errorf("フォーマットタグが PCM(1) ではないのだ: %d", format)
		}
		if ch := binary.LittleEndian.Uint16(wav[22:24]); ch != 1 {
			t.Errorf("チャンネル数が違うのだ: %d", ch)
		}
		if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != DefaultSampleRate {
			t.Errorf("サンプルレートが違うのだ: %d", rate)
		}
		if bits := binary.LittleEndian.Uint16(wav[34:36]); bits != 16 {
			t.Errorf("ビット深度が違うのだ: %d", bits)
		}
	})

	t.Run("データチャンク長とPCM本体が一致するのだ", func(t *testing.T) {
		if size := binary.LittleEndian.Uint32(wav[40:44]); int(size) != len(pcm) {
			t.Errorf("データ長が違うのだ: %d", size)
		}
		if !bytes.Equal(wav[44:], pcm) {
			t.Error("PCM本体が一致しないのだ")
		}
	})

	t.Run("RIFFチャンクサイズは36+データ長なのだ", func(t *testing.T) {
		if size := binary.LittleEndian.Uint32(wav[4:8]); int(size) != 36+len(pcm) {
			t.Errorf("RIFFサイズが違うのだ: %d", size)
		}
	})
}
