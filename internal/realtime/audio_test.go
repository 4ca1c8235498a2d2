package realtime

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func pcm16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestConvertAudio_SkipWhenNotRequested(t *testing.T) {
	log := newEventLog(nil)
	in := pcm16(1, 2, 3)
	out := convertAudio(log, in, false, 24000)
	require.Equal(t, in, out)
	require.Equal(t, "audio.convert.skip", log.Events()[0].Type)
}

func TestConvertAudio_NoOpWhenRatesMatch(t *testing.T) {
	log := newEventLog(nil)
	in := pcm16(10, 20, 30)
	out := convertAudio(log, in, true, 24000)
	require.Equal(t, in, out)
	require.Equal(t, "audio.converted.pcm16_24k", log.Events()[0].Type)
}

func TestConvertAudio_ResamplesWhenRatesDiffer(t *testing.T) {
	log := newEventLog(nil)
	in := pcm16(0, 100, 200, 300)
	out := convertAudio(log, in, true, 48000)
	require.Len(t, out, 4) // half the samples at half the rate
	require.Equal(t, "audio.converted.pcm16_24k", log.Events()[0].Type)
}

func TestConvertAudio_FallsBackToOriginalOnError(t *testing.T) {
	log := newEventLog(nil)
	in := []byte{0x01} // odd length: not valid pcm16
	out := convertAudio(log, in, true, 48000)
	require.Equal(t, in, out)
	require.Equal(t, "audio.convert.error", log.Events()[0].Type)
}
