// Package analysis provides frequency analysis of a run's mass series.
//
//   - [FFT]: radix-2 fast Fourier transform
//   - [Spectrum]: one-sided power spectrum with mean removal
//   - [DominantFrequency]: strongest non-DC spectral line in hertz
//
// The spectrum of the total-mass series exposes the slow pressure
// cycling that drives valve activity:
//
//	ps := analysis.Spectrum(ds.TotalMass())
//	f := analysis.DominantFrequency(ps, ds.Meta.SampleStep)
package analysis
