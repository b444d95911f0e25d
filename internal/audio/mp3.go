package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/RMahshie/rt60/internal/acoustics"
)

// mp3Reader is the part of gomp3.Decoder used here, so tests can substitute it.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

// MP3Decoder decodes MPEG-1/2 layer III streams.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.Reader) (acoustics.Signal, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return acoustics.Signal{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return readMP3(dec)
}

// readMP3 reads 16-bit little-endian stereo PCM, the only layout go-mp3 emits.
func readMP3(dec mp3Reader) (acoustics.Signal, error) {
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return acoustics.Signal{}, fmt.Errorf("%w: reading MP3 frames: %v", ErrDecode, err)
	}
	if dec.SampleRate() <= 0 {
		return acoustics.Signal{}, fmt.Errorf("%w: invalid sample rate %d", ErrDecode, dec.SampleRate())
	}

	samples := make([]float64, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		samples[i] = float64(v) / (1 << 15)
	}

	return acoustics.Signal{
		SampleRate: dec.SampleRate(),
		Samples:    downmix(samples, 2),
	}, nil
}
