package srs

// Params defines all configurable parameters for the review scheduler.
// The contract is growth-on-success and reset-on-failure; the constants
// themselves are tunable, not load-bearing.
type Params struct {
	// Interval limits in days
	MinIntervalDays int
	MaxIntervalDays int

	// Ease factor limits and starting point. The ease factor is the
	// multiplier applied to the interval after a correct recall.
	DefaultEaseFactor float64
	MinEaseFactor     float64
	MaxEaseFactor     float64

	// Drift applied to the ease factor after each review
	CorrectEaseBonus     float64
	IncorrectEasePenalty float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinIntervalDays int
	MaxIntervalDays int

	DefaultEaseFactor float64
	MinEaseFactor     float64
	MaxEaseFactor     float64

	CorrectEaseBonus     float64
	IncorrectEasePenalty float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinIntervalDays: 1,
		MaxIntervalDays: 180,

		DefaultEaseFactor: 2.0,
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,

		CorrectEaseBonus:     0.05,
		IncorrectEasePenalty: -0.20,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinIntervalDays > 0 {
		params.MinIntervalDays = config.MinIntervalDays
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}

	if config.DefaultEaseFactor > 1.0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}
	if config.MinEaseFactor > 1.0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 1.0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	if config.CorrectEaseBonus > 0 {
		params.CorrectEaseBonus = config.CorrectEaseBonus
	}
	if config.IncorrectEasePenalty < 0 {
		params.IncorrectEasePenalty = config.IncorrectEasePenalty
	}

	return params
}
