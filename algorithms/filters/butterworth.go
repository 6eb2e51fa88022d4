package filters

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// BandType selects the filter's frequency response shape
type BandType int

const (
	Lowpass BandType = iota
	Highpass
	Bandpass
	Bandstop
)

func (b BandType) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return "unknown"
	}
}

// FilterParams configures a Butterworth filter.
//
// Lowpass designs use HighCutoff as the band edge, Highpass designs use
// LowCutoff, and the band types use both. Cutoffs are in Hz and must lie
// strictly between 0 and the Nyquist frequency.
type FilterParams struct {
	SampleRate float64  `json:"sample_rate" yaml:"sample_rate"`
	Order      int      `json:"order" yaml:"order"`
	Type       BandType `json:"type" yaml:"type"`
	LowCutoff  float64  `json:"low_cutoff" yaml:"low_cutoff"`
	HighCutoff float64  `json:"high_cutoff" yaml:"high_cutoff"`
}

// biquad is a single filter section in transposed direct form II with the
// denominator normalized to a0 = 1. First-order sections set b2 = a2 = 0.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

func (s biquad) apply(dst, src []float64) {
	var z1, z2 float64
	for i, x := range src {
		y := s.b0*x + z1
		z1 = s.b1*x - s.a1*y + z2
		z2 = s.b2*x - s.a2*y
		dst[i] = y
	}
}

// Butterworth implements Butterworth low-pass, high-pass, band-pass and
// band-stop filtering as a cascade of second-order sections.
//
// Section coefficients come from the cookbook formulas in Robert
// Bristow-Johnson's "Cookbook formulae for audio EQ biquad filter
// coefficients", with the per-section Q values of the Butterworth pole
// cascade. Band-pass responses cascade a high-pass at the low edge with a
// low-pass at the high edge; band-stop responses cascade notch sections
// centered on the geometric mean of the band edges.
type Butterworth struct {
	params   FilterParams
	sections []biquad
}

// NewButterworth creates a filter from the given parameters, validating them
// against the sample rate
func NewButterworth(params FilterParams) (*Butterworth, error) {
	if params.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %f", params.SampleRate)
	}
	if params.Order < 1 {
		return nil, fmt.Errorf("filter order must be >= 1, got %d", params.Order)
	}

	nyquist := params.SampleRate / 2.0
	checkCutoff := func(name string, f float64) error {
		if f <= 0 || f >= nyquist {
			return fmt.Errorf("%s cutoff %f out of range (0, %f)", name, f, nyquist)
		}
		return nil
	}

	bw := &Butterworth{params: params}

	switch params.Type {
	case Lowpass:
		if err := checkCutoff("lowpass", params.HighCutoff); err != nil {
			return nil, err
		}
		bw.sections = butterSections(params.SampleRate, params.HighCutoff, params.Order, false)

	case Highpass:
		if err := checkCutoff("highpass", params.LowCutoff); err != nil {
			return nil, err
		}
		bw.sections = butterSections(params.SampleRate, params.LowCutoff, params.Order, true)

	case Bandpass, Bandstop:
		if err := checkCutoff("low", params.LowCutoff); err != nil {
			return nil, err
		}
		if err := checkCutoff("high", params.HighCutoff); err != nil {
			return nil, err
		}
		if params.LowCutoff >= params.HighCutoff {
			return nil, fmt.Errorf("low cutoff %f must be below high cutoff %f",
				params.LowCutoff, params.HighCutoff)
		}
		if params.Type == Bandpass {
			bw.sections = append(
				butterSections(params.SampleRate, params.LowCutoff, params.Order, true),
				butterSections(params.SampleRate, params.HighCutoff, params.Order, false)...)
		} else {
			bw.sections = notchSections(params.SampleRate,
				params.LowCutoff, params.HighCutoff, params.Order)
		}

	default:
		return nil, fmt.Errorf("unsupported filter type: %d", params.Type)
	}

	return bw, nil
}

// MinInputLength is the shortest signal the filter will act on; shorter
// inputs pass through unchanged rather than producing edge garbage
func (bw *Butterworth) MinInputLength() int {
	return max(bw.params.Order*6, 9)
}

// Apply runs the filter causally over the signal and returns a new slice.
// Inputs shorter than MinInputLength are returned as an unmodified copy.
func (bw *Butterworth) Apply(signal []float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)
	if len(signal) < bw.MinInputLength() {
		return out
	}
	for _, sec := range bw.sections {
		sec.apply(out, out)
	}
	return out
}

// ApplyZeroPhase runs the filter forward and backward over the signal so the
// net phase response is zero, with odd-reflected edge padding to suppress
// startup transients. The result has the same length as the input.
func (bw *Butterworth) ApplyZeroPhase(signal []float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)
	if len(signal) < bw.MinInputLength() {
		return out
	}

	padlen := bw.padLength(len(signal))
	ext := oddExtend(signal, padlen)

	for _, sec := range bw.sections {
		sec.apply(ext, ext)
	}
	floats.Reverse(ext)
	for _, sec := range bw.sections {
		sec.apply(ext, ext)
	}
	floats.Reverse(ext)

	copy(out, ext[padlen:padlen+len(signal)])
	return out
}

func (bw *Butterworth) padLength(n int) int {
	minCutoff := bw.params.LowCutoff
	if bw.params.Type == Lowpass || minCutoff <= 0 {
		minCutoff = bw.params.HighCutoff
	}
	padlen := int(3 * bw.params.SampleRate / minCutoff)
	padlen = max(padlen, 1)
	return min(padlen, n-1)
}

// oddExtend pads the signal on both ends with its odd reflection about the
// end samples, the same edge treatment as forward-backward filtering in
// common scientific toolkits
func oddExtend(signal []float64, padlen int) []float64 {
	n := len(signal)
	ext := make([]float64, n+2*padlen)
	for i := range padlen {
		ext[padlen-1-i] = 2*signal[0] - signal[i+1]
		ext[n+padlen+i] = 2*signal[n-1] - signal[n-2-i]
	}
	copy(ext[padlen:], signal)
	return ext
}

// butterSections builds the Butterworth cascade for a low- or high-pass
// design of the given order: order/2 biquads, plus a first-order section when
// the order is odd
func butterSections(sampleRate, cutoff float64, order int, highpass bool) []biquad {
	var sections []biquad

	if order%2 == 1 {
		sections = append(sections, firstOrderSection(sampleRate, cutoff, highpass))
		for k := 1; k <= (order-1)/2; k++ {
			q := 1.0 / (2.0 * math.Cos(float64(k)*math.Pi/float64(order)))
			sections = append(sections, cookbookSection(sampleRate, cutoff, q, highpass))
		}
	} else {
		for k := 0; k < order/2; k++ {
			q := 1.0 / (2.0 * math.Cos(float64(2*k+1)*math.Pi/float64(2*order)))
			sections = append(sections, cookbookSection(sampleRate, cutoff, q, highpass))
		}
	}
	return sections
}

// cookbookSection computes RBJ cookbook biquad coefficients for a low- or
// high-pass section with the given Q
func cookbookSection(sampleRate, cutoff, q float64, highpass bool) biquad {
	w0 := normalizedFreq(sampleRate, cutoff)
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 * q)
	a0 := 1.0 + alpha

	var b0, b1, b2 float64
	if highpass {
		b0 = (1.0 + cosw) / 2.0
		b1 = -(1.0 + cosw)
		b2 = (1.0 + cosw) / 2.0
	} else {
		b0 = (1.0 - cosw) / 2.0
		b1 = 1.0 - cosw
		b2 = (1.0 - cosw) / 2.0
	}

	return biquad{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: -2.0 * cosw / a0,
		a2: (1.0 - alpha) / a0,
	}
}

// firstOrderSection computes a bilinear-transform first-order Butterworth
// section
func firstOrderSection(sampleRate, cutoff float64, highpass bool) biquad {
	w0 := normalizedFreq(sampleRate, cutoff)
	tt := math.Tan(w0 / 2.0)
	a1 := (tt - 1.0) / (tt + 1.0)

	if highpass {
		b0 := 1.0 / (1.0 + tt)
		return biquad{b0: b0, b1: -b0, a1: a1}
	}
	b0 := tt / (1.0 + tt)
	return biquad{b0: b0, b1: b0, a1: a1}
}

// notchSections builds a band-stop cascade of cookbook notch sections
// centered on the geometric mean of the band edges
func notchSections(sampleRate, lowCutoff, highCutoff float64, order int) []biquad {
	center := math.Sqrt(lowCutoff * highCutoff)
	q := center / (highCutoff - lowCutoff)

	w0 := normalizedFreq(sampleRate, center)
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 * q)
	a0 := 1.0 + alpha

	sec := biquad{
		b0: 1.0 / a0,
		b1: -2.0 * cosw / a0,
		b2: 1.0 / a0,
		a1: -2.0 * cosw / a0,
		a2: (1.0 - alpha) / a0,
	}

	sections := make([]biquad, max(order/2, 1))
	for i := range sections {
		sections[i] = sec
	}
	return sections
}

// normalizedFreq converts a cutoff in Hz to radians/sample, clamped just
// below Nyquist to avoid numerical issues
func normalizedFreq(sampleRate, cutoff float64) float64 {
	w0 := 2.0 * math.Pi * cutoff / sampleRate
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}
	return w0
}
