package audio

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/RMahshie/rt60/internal/acoustics"
)

// oggReader is the part of oggvorbis.Reader used here, so tests can substitute it.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.Reader) (acoustics.Signal, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return acoustics.Signal{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return readVorbis(dec)
}

func readVorbis(dec oggReader) (acoustics.Signal, error) {
	channels := dec.Channels()
	if channels <= 0 || dec.SampleRate() <= 0 {
		return acoustics.Signal{}, fmt.Errorf("%w: invalid stream %d Hz, %d channels", ErrDecode, dec.SampleRate(), channels)
	}

	buf := make([]float32, 4096*channels)
	var samples []float64
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			samples = append(samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return acoustics.Signal{}, fmt.Errorf("%w: reading Vorbis packets: %v", ErrDecode, err)
		}
		if n == 0 {
			break
		}
	}

	return acoustics.Signal{
		SampleRate: dec.SampleRate(),
		Samples:    downmix(samples, channels),
	}, nil
}
