package assscript

// Metrics describes the font proportions the compiler needs for box sizing
// and overlay baselines, expressed as fractions of the em size.
type Metrics struct {
	AscentRatio   float64
	DescentRatio  float64
	AvgCharRatio  float64
}

// MetricsFunc resolves metrics for a font family. Returning false falls the
// compiler back to fixed-width approximations; rendering always proceeds.
type MetricsFunc func(family string) (Metrics, bool)

// fallbackMetrics approximates a typical Latin text face.
var fallbackMetrics = Metrics{
	AscentRatio:  0.80,
	DescentRatio: 0.20,
	AvgCharRatio: 0.55,
}

func resolveMetrics(lookup MetricsFunc, family string) Metrics {
	if lookup != nil {
		if m, ok := lookup(family); ok {
			if m.AscentRatio <= 0 {
				m.AscentRatio = fallbackMetrics.AscentRatio
			}
			if m.DescentRatio <= 0 {
				m.DescentRatio = fallbackMetrics.DescentRatio
			}
			if m.AvgCharRatio <= 0 {
				m.AvgCharRatio = fallbackMetrics.AvgCharRatio
			}
			return m
		}
	}
	return fallbackMetrics
}
