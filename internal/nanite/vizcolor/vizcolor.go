// Package vizcolor assigns each cluster a stable debug color, the
// Go-side analogue of the source's cluster colorization visualization
// aid. It has no bearing on any core algorithm; it exists purely for
// the metadata sidecar (spec.md §6) and is wired only from cmd/.
package vizcolor

import "github.com/google/uuid"

// goldenAngle (the golden-ratio fraction) is a fixed offset added to
// every hash-derived hue before it is wrapped back into [0,1); the
// spread of hues across clusters comes from the UUID hash.
const goldenAngle = 0.61803398875

// saturation and lightness are fixed so colors stay visually distinct
// and none land on pure black or white.
const (
	saturation = 0.65
	lightness  = 0.55
)

// ForCluster derives a stable RGB triple from id: every call with the
// same UUID returns the same color, and distinct UUIDs are spread
// across the hue wheel rather than clustered together.
func ForCluster(id uuid.UUID) (r, g, b float32) {
	hash := uint32(0)
	for _, by := range id {
		hash = hash*31 + uint32(by)
	}
	hue := float64(hash&0xffff)/0x10000 + goldenAngle
	hue -= float64(int(hue))
	return hslToRGB(hue, saturation, lightness)
}

func hslToRGB(h, s, l float64) (r, g, b float32) {
	if s == 0 {
		return float32(l), float32(l), float32(l)
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return float32(hueToChannel(p, q, h+1.0/3.0)),
		float32(hueToChannel(p, q, h)),
		float32(hueToChannel(p, q, h-1.0/3.0))
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
