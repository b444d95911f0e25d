package acoustics

import "math"

const testRate = 44100

// tone returns seconds of a sine at freq Hz whose level falls by dbPerSecond.
func tone(freq, amplitude, dbPerSecond, seconds float64) []float64 {
	n := int(seconds * testRate)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / testRate
		gain := math.Pow(10, -dbPerSecond*t/20)
		out[i] = amplitude * gain * math.Sin(2*math.Pi*freq*t)
	}
	return out
}

func mix(parts ...[]float64) []float64 {
	out := make([]float64, len(parts[0]))
	for _, p := range parts {
		for i := range out {
			out[i] += p[i]
		}
	}
	return out
}

// linearSeries returns n levels falling stepDB per sample and times spaced dt apart.
func linearSeries(n int, stepDB, dt float64) (values, times []float64) {
	values = make([]float64, n)
	times = make([]float64, n)
	for i := range values {
		values[i] = -stepDB * float64(i)
		times[i] = dt * float64(i)
	}
	return values, times
}
