// Package stats summarizes a flight from its projected samples: track
// length, altitude envelope, average speed. Everything is recomputed on
// demand from the immutable sample slice; nothing here caches.
package stats

import(
	"fmt"

	"github.com/skyloom/wayline"
	"github.com/skyloom/wayline/frame"
)

// Mission is one flight's summary. Lengths cover the full 3D track
// (horizontal and vertical legs both count). Speeds average only the
// waypoints that specify one.
type Mission struct {
	Points      int
	LengthM     float64
	LengthFt    float64
	MinAltFt    float64
	MaxAltFt    float64
	AvgSpeedMs  float64
	AvgSpeedMph float64
}

// Compute walks the samples in flight order. A flight with no samples
// has no summary: nil, not zeros.
func Compute(samples []frame.Sample) *Mission {
	if len(samples) == 0 {
		return nil
	}

	m := Mission{
		Points:   len(samples),
		MinAltFt: samples[0].AltitudeFt,
		MaxAltFt: samples[0].AltitudeFt,
	}

	speedSum,speedN := 0.0, 0
	for i,s := range samples {
		if i > 0 {
			m.LengthM += s.Pos.Dist(samples[i-1].Pos)
		}
		if s.AltitudeFt < m.MinAltFt { m.MinAltFt = s.AltitudeFt }
		if s.AltitudeFt > m.MaxAltFt { m.MaxAltFt = s.AltitudeFt }
		if s.SpeedMs != nil {
			speedSum += *s.SpeedMs
			speedN++
		}
	}

	m.LengthFt = m.LengthM / wayline.MetersPerFoot
	if speedN > 0 {
		m.AvgSpeedMs = speedSum / float64(speedN)
		m.AvgSpeedMph = m.AvgSpeedMs * wayline.MphPerMs
	}

	return &m
}

func (m Mission)String() string {
	return fmt.Sprintf("%d waypoints, %.0fm (%.0fft), alt %.0f-%.0fft, avg %.1fm/s (%.1fmph)",
		m.Points, m.LengthM, m.LengthFt, m.MinAltFt, m.MaxAltFt, m.AvgSpeedMs, m.AvgSpeedMph)
}
