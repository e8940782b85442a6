package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the radix-2 discrete Fourier transform. The input
// length must be a power of two; Spectrum pads for callers.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// Spectrum returns the one-sided power spectrum of an arbitrary-length
// series. The mean is removed so the DC bin does not swamp the plot,
// then the series is zero-padded to a power of two.
func Spectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the peak bin's frequency in Hz given the
// sample spacing, skipping the DC bin. A flat spectrum yields 0.
func DominantFrequency(ps []float64, sampleStep float64) float64 {
	if len(ps) < 2 || sampleStep <= 0 {
		return 0
	}
	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	// len(ps) is half the padded length; bin width is 1/(N*dt).
	return float64(maxIdx) / (float64(2*len(ps)) * sampleStep)
}
