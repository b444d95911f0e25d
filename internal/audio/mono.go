package audio

// downmix averages interleaved frames of channels values into one mono
// sample per frame. A trailing partial frame is dropped.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	inv := 1 / float64(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			out[f] = (interleaved[idx] + interleaved[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			var sum float64
			base := f * channels
			for c := range channels {
				sum += interleaved[base+c]
			}
			out[f] = sum * inv
		}
	}

	return out
}

// intScale returns the divisor mapping signed PCM of bitDepth onto [-1, 1).
func intScale(bitDepth int) (float64, bool) {
	switch bitDepth {
	case 16:
		return 1 << 15, true
	case 24:
		return 1 << 23, true
	case 32:
		return 1 << 31, true
	default:
		return 0, false
	}
}
