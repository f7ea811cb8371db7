package layout

// Default spacing constants, in abstract layout units. Their magnitudes are
// a rendering concern; correctness only requires that width calculation and
// positioning share the same values, which Config guarantees.
const (
	DefaultNodeWidth         = 180.0
	DefaultNodeHeight        = 100.0
	DefaultHorizontalSpacing = 60.0
	DefaultVerticalSpacing   = 80.0
	DefaultSpouseSpacing     = 220.0
	DefaultMarginX           = 50.0
	DefaultMarginY           = 50.0
)

// Config carries the layout constants shared by the subtree-width pass and
// the positioning pass. The zero value is not usable - use DefaultConfig,
// or fill every field and call Validate.
type Config struct {
	// NodeWidth and NodeHeight are the footprint of a single member card.
	NodeWidth  float64 `json:"node_width" bson:"node_width" toml:"node_width"`
	NodeHeight float64 `json:"node_height" bson:"node_height" toml:"node_height"`

	// HorizontalSpacing separates sibling subtrees; VerticalSpacing
	// separates generation rows.
	HorizontalSpacing float64 `json:"horizontal_spacing" bson:"horizontal_spacing" toml:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing" bson:"vertical_spacing" toml:"vertical_spacing"`

	// SpouseSpacing is the x-offset from a member to its spouse card.
	SpouseSpacing float64 `json:"spouse_spacing" bson:"spouse_spacing" toml:"spouse_spacing"`

	// MarginX is the left margin where the first root tree starts;
	// MarginY is the top margin of generation row 0.
	MarginX float64 `json:"margin_x" bson:"margin_x" toml:"margin_x"`
	MarginY float64 `json:"margin_y" bson:"margin_y" toml:"margin_y"`
}

// DefaultConfig returns the standard spacing configuration.
func DefaultConfig() Config {
	return Config{
		NodeWidth:         DefaultNodeWidth,
		NodeHeight:        DefaultNodeHeight,
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		SpouseSpacing:     DefaultSpouseSpacing,
		MarginX:           DefaultMarginX,
		MarginY:           DefaultMarginY,
	}
}

// Validate reports whether the configuration is internally consistent.
// Dimensions and spacings must be positive; margins may be zero.
func (c Config) Validate() error {
	switch {
	case c.NodeWidth <= 0:
		return errInvalidConfig("node_width", c.NodeWidth)
	case c.NodeHeight <= 0:
		return errInvalidConfig("node_height", c.NodeHeight)
	case c.HorizontalSpacing <= 0:
		return errInvalidConfig("horizontal_spacing", c.HorizontalSpacing)
	case c.VerticalSpacing <= 0:
		return errInvalidConfig("vertical_spacing", c.VerticalSpacing)
	case c.SpouseSpacing <= 0:
		return errInvalidConfig("spouse_spacing", c.SpouseSpacing)
	case c.MarginX < 0:
		return errInvalidConfig("margin_x", c.MarginX)
	case c.MarginY < 0:
		return errInvalidConfig("margin_y", c.MarginY)
	}
	return nil
}

// coupleWidth returns the horizontal footprint of a member card plus its
// spouse card, when present.
func (c Config) coupleWidth(hasSpouse bool) float64 {
	if hasSpouse {
		return c.NodeWidth + c.SpouseSpacing
	}
	return c.NodeWidth
}
