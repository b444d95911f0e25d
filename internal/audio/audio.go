package audio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/RMahshie/rt60/internal/acoustics"
)

// Errors returned by decoders.
var (
	ErrDecode            = errors.New("audio: failed to decode")
	ErrUnsupportedFormat = errors.New("audio: unsupported format")
)

// Decoder turns an encoded audio stream into a mono signal.
type Decoder interface {
	Decode(r io.Reader) (acoustics.Signal, error)
}

// Registry maps format keys ("wav", "mp3", ...) to decoders.
type Registry struct {
	codecs map[string]Decoder
	mtx    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with every supported format registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", WAVDecoder{})
	r.Register("aiff", AIFFDecoder{})
	r.Register("mp3", MP3Decoder{})
	r.Register("ogg", VorbisDecoder{})
	return r
}

// Register adds or replaces the decoder for format.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

// Get returns the decoder registered for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Decode decodes r with the decoder registered for format.
func (r *Registry) Decode(format string, rd io.Reader) (acoustics.Signal, error) {
	d, ok := r.Get(format)
	if !ok {
		return acoustics.Signal{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return d.Decode(rd)
}

var mimeFormats = map[string]string{
	"audio/wav":      "wav",
	"audio/x-wav":    "wav",
	"audio/wave":     "wav",
	"audio/vnd.wave": "wav",
	"audio/aiff":     "aiff",
	"audio/x-aiff":   "aiff",
	"audio/mpeg":     "mp3",
	"audio/mp3":      "mp3",
	"audio/ogg":      "ogg",
	"audio/vorbis":   "ogg",
}

var extFormats = map[string]string{
	".wav":  "wav",
	".wave": "wav",
	".aif":  "aiff",
	".aiff": "aiff",
	".mp3":  "mp3",
	".ogg":  "ogg",
	".oga":  "ogg",
}

// FormatForMIME returns the format key for a MIME type, ignoring parameters
// such as "; codecs=vorbis".
func FormatForMIME(mimeType string) (string, error) {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	if f, ok := mimeFormats[base]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: mime type %q", ErrUnsupportedFormat, mimeType)
}

// FormatForPath returns the format key for a file name.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: file extension %q", ErrUnsupportedFormat, ext)
}

// SupportedMIMETypes lists every MIME type FormatForMIME accepts.
func SupportedMIMETypes() []string {
	out := make([]string, 0, len(mimeFormats))
	for m := range mimeFormats {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
