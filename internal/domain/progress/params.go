package progress

// Params defines all configurable parameters for the gamification engine.
// The XP amounts and curve constants were tuned by hand; treat them as
// knobs, not contracts.
type Params struct {
	// Level curve: XP required to reach level n is
	// round(XPCurveBase * (n-1)^XPCurveExponent).
	XPCurveBase     float64
	XPCurveExponent float64
	MaxLevel        int

	// XP awarded per learning action
	QuizXP     int
	RolePlayXP int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	XPCurveBase     float64
	XPCurveExponent float64
	MaxLevel        int

	QuizXP     int
	RolePlayXP int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		XPCurveBase:     100,
		XPCurveExponent: 1.5,
		MaxLevel:        100,

		QuizXP:     50,
		RolePlayXP: 40,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.XPCurveBase > 0 {
		params.XPCurveBase = config.XPCurveBase
	}
	if config.XPCurveExponent > 0 {
		params.XPCurveExponent = config.XPCurveExponent
	}
	if config.MaxLevel > 1 {
		params.MaxLevel = config.MaxLevel
	}

	if config.QuizXP > 0 {
		params.QuizXP = config.QuizXP
	}
	if config.RolePlayXP > 0 {
		params.RolePlayXP = config.RolePlayXP
	}

	return params
}
