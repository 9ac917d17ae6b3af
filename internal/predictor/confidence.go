package predictor

import "math"

// ConfidenceEstimator blends minutes reliability, form stability and fixture
// ease into a single score in [0,1].
type ConfidenceEstimator struct {
	params ModelParams
}

func NewConfidenceEstimator(params ModelParams) ConfidenceEstimator {
	return ConfidenceEstimator{params: params}
}

// Estimate always returns a value in [0,1], including for degenerate inputs
// like zero minutes or maximum difficulty.
func (e ConfidenceEstimator) Estimate(form FormMetrics, difficulty float64) float64 {
	w := e.params.Confidence

	minutesFactor := math.Min(form.AvgMinutes/90, 1)
	formFactor := form.Stability
	fixtureFactor := 1 - difficulty/5

	confidence := minutesFactor*w.Minutes + formFactor*w.Form + fixtureFactor*w.Fixture
	return clamp01(confidence)
}
