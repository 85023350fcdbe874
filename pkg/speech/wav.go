package speech

import "encoding/binary"

// 音声合成の既定パラメータです。モデルが返すPCMの実フォーマットに合わせています。
const (
	DefaultSampleRate = 24000
	DefaultVoice      = "Kore"

	numChannels   = 1
	bitsPerSample = 16
)

// EncodeWAV は、生のリトルエンディアン16bitモノラルPCMをWAVコンテナへ詰めます。
// モデル応答はヘッダなしのPCMで届くため、再生可能にするにはこの詰め替えが必須です。
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := len(pcm)

	buf := make([]byte, 0, 44+dataSize)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataSize))
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, numChannels)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, bitsPerSample)

	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	buf = append(buf, pcm...)

	return buf
}
