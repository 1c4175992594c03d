// Package audio wraps the speech gateway's raw PCM into a WAV container so
// browsers can play it directly.
package audio

import (
	"bytes"
	"encoding/binary"
)

// Speech synthesis output format: 24 kHz, 16-bit, mono PCM.
const (
	SampleRate    = 24000
	BitsPerSample = 16
	NumChannels   = 1
)

// WAV prepends a RIFF/WAVE header to raw little-endian PCM samples.
func WAV(pcm []byte) []byte {
	const headerSize = 44
	blockAlign := NumChannels * BitsPerSample / 8
	byteRate := SampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(headerSize + len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(NumChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(BitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
