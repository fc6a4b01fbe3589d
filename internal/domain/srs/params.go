package srs

// Params defines all configurable parameters for the SM-2 scheduling
// algorithm. The defaults reproduce the classic three-tier interval ladder.
type Params struct {
	// MinEaseFactor is the floor the ease factor is clamped to after every
	// adjustment. Below this the intervals would stop growing meaningfully.
	MinEaseFactor float64

	// PassQuality is the lowest quality rating counted as a successful
	// recall. Ratings below it reset the schedule.
	PassQuality int

	// FirstInterval is the interval in days assigned after the first
	// successful review and after every lapse.
	FirstInterval int

	// SecondInterval is the interval in days assigned after the second
	// consecutive successful review. From the third on, the interval grows
	// multiplicatively by the ease factor.
	SecondInterval int

	// MaxIntervalDays caps interval growth. Zero means no cap.
	MaxIntervalDays int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinEaseFactor   float64
	PassQuality     int
	FirstInterval   int
	SecondInterval  int
	MaxIntervalDays int
}

// NewDefaultParams creates a new Params instance with the classic SM-2
// values: 1 day, then 6 days, then multiplicative growth with an ease floor
// of 1.3.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:   1.3,
		PassQuality:     3,
		FirstInterval:   1,
		SecondInterval:  6,
		MaxIntervalDays: 365,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.PassQuality > 0 {
		params.PassQuality = config.PassQuality
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}

	return params
}
