package realtime

import (
	"encoding/binary"
	"fmt"
)

const targetSampleRate = 24000

// convertAudio implements the context.convert_to_pcm16 hook: when
// requested, it resamples 16-bit little-endian PCM to mono 24kHz,
// recording the outcome as an event and falling back to the original
// bytes on any failure. sourceRate is read from the case context
// ("audio_sample_rate"), defaulting to targetSampleRate (a no-op
// resample) when absent.
func convertAudio(log *eventLog, audio []byte, convert bool, sourceRate int) []byte {
	if !convert {
		log.record("audio.convert.skip", nil, nil, false)
		return audio
	}

	converted, err := resamplePCM16Mono(audio, sourceRate, targetSampleRate)
	if err != nil {
		log.record("audio.convert.error", nil, err.Error(), false)
		return audio
	}

	size := len(converted)
	log.record("audio.converted.pcm16_24k", &size, nil, false)
	return converted
}

// resamplePCM16Mono treats audio as 16-bit little-endian PCM samples and
// linearly resamples from sourceRate to targetRate. sourceRate <= 0 is
// treated as targetRate; a length not divisible by 2 is rejected;
// sourceRate == targetRate returns audio unchanged.
func resamplePCM16Mono(audio []byte, sourceRate, targetRate int) ([]byte, error) {
	if sourceRate <= 0 {
		sourceRate = targetRate
	}
	if len(audio)%2 != 0 {
		return nil, fmt.Errorf("pcm16 payload has odd byte length %d", len(audio))
	}
	if sourceRate == targetRate {
		return audio, nil
	}

	n := len(audio) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(audio[i*2:]))
	}

	outN := int(int64(n) * int64(targetRate) / int64(sourceRate))
	if outN < 1 {
		outN = 1
	}
	out := make([]byte, outN*2)
	for i := 0; i < outN; i++ {
		srcPos := float64(i) * float64(sourceRate) / float64(targetRate)
		lo := int(srcPos)
		if lo >= n-1 {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(samples[n-1]))
			continue
		}
		frac := srcPos - float64(lo)
		interp := float64(samples[lo])*(1-frac) + float64(samples[lo+1])*frac
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(interp)))
	}
	return out, nil
}
