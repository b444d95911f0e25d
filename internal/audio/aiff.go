package audio

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/RMahshie/rt60/internal/acoustics"
)

// aiffReader is the part of aiff.Decoder used here, so tests can substitute it.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// AIFFDecoder decodes PCM AIFF files of 16, 24 or 32 bits.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.Reader) (acoustics.Signal, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return acoustics.Signal{}, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return acoustics.Signal{}, fmt.Errorf("%w: not a valid AIFF file", ErrDecode)
	}
	dec.ReadInfo()

	return readAIFF(dec, int(dec.BitDepth))
}

func readAIFF(dec aiffReader, bitDepth int) (acoustics.Signal, error) {
	format := dec.Format()
	if format == nil {
		return acoustics.Signal{}, fmt.Errorf("%w: missing AIFF format", ErrDecode)
	}

	all := &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth}
	chunk := &goaudio.IntBuffer{Format: format, Data: make([]int, 4096)}
	for {
		n, err := dec.PCMBuffer(chunk)
		if err != nil && err != io.EOF {
			return acoustics.Signal{}, fmt.Errorf("%w: reading AIFF PCM data: %v", ErrDecode, err)
		}
		all.Data = append(all.Data, chunk.Data[:n]...)
		if err == io.EOF || n == 0 {
			break
		}
	}

	return fromIntBuffer(all)
}
