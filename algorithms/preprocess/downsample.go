package preprocess

// Downsample decimates the series by keeping every factor-th sample. A factor
// below 2 returns a copy of the input.
func Downsample(data []float64, factor int) []float64 {
	if factor < 1 {
		factor = 1
	}
	out := make([]float64, 0, (len(data)+factor-1)/factor)
	for i := 0; i < len(data); i += factor {
		out = append(out, data[i])
	}
	return out
}

// DownsampleMask decimates a boolean mask with the same stride convention as
// Downsample
func DownsampleMask(mask []bool, factor int) []bool {
	if factor < 1 {
		factor = 1
	}
	out := make([]bool, 0, (len(mask)+factor-1)/factor)
	for i := 0; i < len(mask); i += factor {
		out = append(out, mask[i])
	}
	return out
}
