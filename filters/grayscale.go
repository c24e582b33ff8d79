package filters

// GrayscaleMode determines the algorithm for RGB to grayscale conversion.
type GrayscaleMode int

const (
	// GrayscaleAverage uses simple average: (R + G + B) / 3
	GrayscaleAverage GrayscaleMode = iota
	// GrayscaleLuminance uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
	GrayscaleLuminance
	// GrayscaleLightness uses min/max average: (max(R,G,B) + min(R,G,B)) / 2
	GrayscaleLightness
)

// GrayscaleModes lists every valid [GrayscaleMode].
var GrayscaleModes = []GrayscaleMode{GrayscaleAverage, GrayscaleLuminance, GrayscaleLightness}

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleLuminance:
		return "Luminance"
	case GrayscaleAverage:
		return "Average"
	case GrayscaleLightness:
		return "Lightness"
	default:
		return "Unknown"
	}
}

// Gray converts a pixel to a single 0..255 intensity.
// Unknown modes fall back to [GrayscaleAverage].
func (m GrayscaleMode) Gray(r, g, b uint8) uint8 {
	switch m {
	case GrayscaleLuminance:
		return uint8((77*uint32(r) + 150*uint32(g) + 29*uint32(b)) >> 8)
	case GrayscaleLightness:
		return uint8((uint32(min(r, g, b)) + uint32(max(r, g, b))) / 2)
	default:
		// Integer division truncates exactly as trunc((r+g+b)/3.0) would.
		return uint8((uint32(r) + uint32(g) + uint32(b)) / 3)
	}
}
