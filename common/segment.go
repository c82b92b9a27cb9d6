package common

// Segment is a closed interval on one axis.
type Segment struct {
	Min float64
	Max float64
}

func NewSegment(a, b float64) Segment {
	if a > b {
		a, b = b, a
	}
	return Segment{Min: a, Max: b}
}

func (s Segment) Length() float64 {
	return s.Max - s.Min
}

// Overlaps reports a strictly positive-length overlap.
func (s Segment) Overlaps(o Segment) bool {
	return s.Min < o.Max && o.Min < s.Max
}

func (s Segment) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

func (s Segment) Center() float64 {
	return (s.Min + s.Max) / 2
}
