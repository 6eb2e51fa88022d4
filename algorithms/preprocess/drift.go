package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CorrectDrift removes slow baseline drift by fitting a polynomial of the
// given degree over normalized time [0, 1] and subtracting it. It returns the
// detrended signal and the fitted drift curve. The fit needs more samples
// than polynomial coefficients.
func CorrectDrift(signal []float64, degree int) (detrended, drift []float64, err error) {
	if degree < 0 {
		return nil, nil, fmt.Errorf("polynomial degree must be >= 0, got %d", degree)
	}
	n := len(signal)
	if n <= degree+1 {
		return nil, nil, fmt.Errorf("need more than %d samples for a degree-%d fit, got %d",
			degree+1, degree, n)
	}

	// Vandermonde design matrix over normalized time
	vandermonde := mat.NewDense(n, degree+1, nil)
	for i := range n {
		tNorm := float64(i) / float64(n-1)
		pow := 1.0
		for j := 0; j <= degree; j++ {
			vandermonde.Set(i, j, pow)
			pow *= tNorm
		}
	}

	var coeffs mat.VecDense
	if err := coeffs.SolveVec(vandermonde, mat.NewVecDense(n, signal)); err != nil {
		return nil, nil, fmt.Errorf("polynomial fit failed: %v", err)
	}

	drift = make([]float64, n)
	detrended = make([]float64, n)
	for i := range n {
		tNorm := float64(i) / float64(n-1)

		// Horner evaluation of the fitted polynomial
		value := coeffs.AtVec(degree)
		for j := degree - 1; j >= 0; j-- {
			value = value*tNorm + coeffs.AtVec(j)
		}
		drift[i] = value
		detrended[i] = signal[i] - value
	}
	return detrended, drift, nil
}
