package audio

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RMahshie/rt60/internal/acoustics"
)

// WAVDecoder decodes PCM WAV files of 16, 24 or 32 bits.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.Reader) (acoustics.Signal, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return acoustics.Signal{}, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return acoustics.Signal{}, fmt.Errorf("%w: not a valid WAV file", ErrDecode)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return acoustics.Signal{}, fmt.Errorf("%w: reading WAV PCM data: %v", ErrDecode, err)
	}

	return fromIntBuffer(buf)
}

// fromIntBuffer normalises a go-audio integer buffer into a mono signal.
func fromIntBuffer(buf *goaudio.IntBuffer) (acoustics.Signal, error) {
	if buf == nil || buf.Format == nil {
		return acoustics.Signal{}, fmt.Errorf("%w: missing PCM format", ErrDecode)
	}
	scale, ok := intScale(buf.SourceBitDepth)
	if !ok {
		return acoustics.Signal{}, fmt.Errorf("%w: unsupported %d-bit PCM", ErrDecode, buf.SourceBitDepth)
	}
	if buf.Format.SampleRate <= 0 || buf.Format.NumChannels <= 0 {
		return acoustics.Signal{}, fmt.Errorf("%w: invalid format %d Hz, %d channels", ErrDecode, buf.Format.SampleRate, buf.Format.NumChannels)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return acoustics.Signal{
		SampleRate: buf.Format.SampleRate,
		Samples:    downmix(samples, buf.Format.NumChannels),
	}, nil
}

// readSeeker returns r itself when it can seek, otherwise buffers it.
// go-audio decoders need to seek between chunks.
func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading input: %v", ErrDecode, err)
	}
	return bytes.NewReader(data), nil
}
