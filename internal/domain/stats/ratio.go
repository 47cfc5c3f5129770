package stats

import "math"

// ratio divides and maps every undefined result to 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// sampler accumulates mean and max over optional values, skipping missing ones.
type sampler struct {
	sum float64
	n   int
	max float64
}

func (s *sampler) add(v *float64) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	if s.n == 0 || *v > s.max {
		s.max = *v
	}
	s.sum += *v
	s.n++
}

func (s *sampler) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

func (s *sampler) maximum() float64 {
	if s.n == 0 {
		return 0
	}
	return s.max
}
