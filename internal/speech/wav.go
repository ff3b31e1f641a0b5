// Package speech validates meeting recordings and transcribes them
// through the Azure Speech REST endpoint.
package speech

import (
	"encoding/binary"
	"fmt"
)

// MaxFileSize is the upload ceiling for recordings.
const MaxFileSize = 100 << 20

const formatPCM = 1

// WAVInfo describes the format chunk of an uploaded recording.
type WAVInfo struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// QualityScore rates how well the recording matches the recognizer's
// preferred format. 3 is ideal (16 kHz, mono, 16-bit PCM), 0 is the
// floor for any decodable PCM file.
func (w WAVInfo) QualityScore() int {
	score := 0
	if w.SampleRate == 16000 {
		score++
	}
	if w.Channels == 1 {
		score++
	}
	if w.BitsPerSample == 16 {
		score++
	}
	return score
}

// Remediation returns advice for recordings that decode but score
// below ideal. Empty when nothing needs changing.
func (w WAVInfo) Remediation() string {
	switch {
	case w.SampleRate != 16000:
		return fmt.Sprintf("recognition works best at a 16 kHz sample rate; this file is %d Hz", w.SampleRate)
	case w.Channels != 1:
		return fmt.Sprintf("recognition works best with mono audio; this file has %d channels", w.Channels)
	case w.BitsPerSample != 16:
		return fmt.Sprintf("recognition works best with 16-bit samples; this file uses %d bits", w.BitsPerSample)
	}
	return ""
}

// ValidateWAV checks that data is a PCM WAV file the recognizer can
// accept and returns its format info. Only the RIFF and fmt chunks are
// inspected.
func ValidateWAV(data []byte) (WAVInfo, error) {
	if len(data) > MaxFileSize {
		return WAVInfo{}, fmt.Errorf("file exceeds the %d MB limit", MaxFileSize>>20)
	}
	if len(data) < 12 {
		return WAVInfo{}, fmt.Errorf("file is too short to be a WAV recording")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return WAVInfo{}, fmt.Errorf("only WAV recordings are supported")
	}

	// Walk chunks looking for fmt.
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if id == "fmt " {
			if body+16 > len(data) {
				return WAVInfo{}, fmt.Errorf("malformed WAV format chunk")
			}
			info := WAVInfo{
				AudioFormat:   binary.LittleEndian.Uint16(data[body : body+2]),
				Channels:      binary.LittleEndian.Uint16(data[body+2 : body+4]),
				SampleRate:    binary.LittleEndian.Uint32(data[body+4 : body+8]),
				BitsPerSample: binary.LittleEndian.Uint16(data[body+14 : body+16]),
			}
			if info.AudioFormat != formatPCM {
				return WAVInfo{}, fmt.Errorf("only PCM-encoded WAV recordings are supported")
			}
			if info.Channels == 0 || info.SampleRate == 0 {
				return WAVInfo{}, fmt.Errorf("malformed WAV format chunk")
			}
			return info, nil
		}
		if size%2 == 1 {
			size++
		}
		offset = body + size
	}
	return WAVInfo{}, fmt.Errorf("WAV file has no format chunk")
}
