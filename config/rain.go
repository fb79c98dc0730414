package config

// Defaults applied when a value is missing or out of range.
const (
	DefaultWidgetSize       = 300 // pixels, used when no size is configured
	DefaultTickInterval     = 20  // milliseconds
	DefaultLeftCloudPeriod  = 1000
	DefaultRightCloudPeriod = 800
	DefaultCloudScaleRatio  = 0.85

	DefaultMaxDrops         = 30 // drops alive at the same time
	DefaultCreationInterval = 50 // milliseconds between spawns
	DefaultMinLength        = 10
	DefaultMaxLength        = 50
	DefaultDropSize         = 15 // stroke width
	DefaultMinSpeed         = 1.0
	DefaultMaxSpeed         = 5.0
	DefaultSlope            = -3.0
)

// RainConfig holds the raindrop spawn and motion parameters.
//
// Inverted pairs (MinLength > MaxLength, MinSpeed > MaxSpeed) are left as
// given; the spawn gate reports them instead of guessing.
type RainConfig struct {
	MaxDrops         int     `yaml:"max_drops"`
	CreationInterval int     `yaml:"creation_interval"` // milliseconds
	MinLength        int     `yaml:"min_length"`
	MaxLength        int     `yaml:"max_length"`
	MinSpeed         float32 `yaml:"min_speed"` // horizontal pixels per tick
	MaxSpeed         float32 `yaml:"max_speed"`
	Slope            float32 `yaml:"slope"`
	DropSize         int     `yaml:"drop_size"` // stroke width in pixels
}

// DefaultRain returns the stock rain parameters.
func DefaultRain() RainConfig {
	return RainConfig{
		MaxDrops:         DefaultMaxDrops,
		CreationInterval: DefaultCreationInterval,
		MinLength:        DefaultMinLength,
		MaxLength:        DefaultMaxLength,
		MinSpeed:         DefaultMinSpeed,
		MaxSpeed:         DefaultMaxSpeed,
		Slope:            DefaultSlope,
		DropSize:         DefaultDropSize,
	}
}

// Normalize resets every out-of-range field to its default.
func (r *RainConfig) Normalize() {
	r.normalizeCreationInterval()
	r.normalizeLength()
	r.normalizeMaxDrops()
	r.normalizeDropSize()
	r.normalizeSpeed()
	r.normalizeSlope()
}

func (r *RainConfig) normalizeMaxDrops() {
	if r.MaxDrops < 0 {
		r.MaxDrops = DefaultMaxDrops
	}
}

func (r *RainConfig) normalizeDropSize() {
	if r.DropSize < 0 {
		r.DropSize = DefaultDropSize
	}
}

func (r *RainConfig) normalizeCreationInterval() {
	if r.CreationInterval < 0 {
		r.CreationInterval = DefaultCreationInterval
	}
}

// Lengths reset as a pair.
func (r *RainConfig) normalizeLength() {
	if r.MinLength < 0 || r.MaxLength < 0 {
		r.MinLength = DefaultMinLength
		r.MaxLength = DefaultMaxLength
	}
}

// Speeds reset as a pair.
func (r *RainConfig) normalizeSpeed() {
	if r.MinSpeed < 0 || r.MaxSpeed < 0 {
		r.MinSpeed = DefaultMinSpeed
		r.MaxSpeed = DefaultMaxSpeed
	}
}

// Any negative slope collapses to the (negative) default.
func (r *RainConfig) normalizeSlope() {
	if r.Slope < 0 {
		r.Slope = DefaultSlope
	}
}

// SetMaxDrops sets the number of drops that may coexist.
func (r *RainConfig) SetMaxDrops(n int) {
	r.MaxDrops = n
	r.normalizeMaxDrops()
}

// SetCreationInterval sets the minimum milliseconds between spawns.
func (r *RainConfig) SetCreationInterval(ms int) {
	r.CreationInterval = ms
	r.normalizeCreationInterval()
}

// SetMinLength sets the shortest drop length.
func (r *RainConfig) SetMinLength(n int) {
	r.MinLength = n
	r.normalizeLength()
}

// SetMaxLength sets the longest drop length.
func (r *RainConfig) SetMaxLength(n int) {
	r.MaxLength = n
	r.normalizeLength()
}

// SetMinSpeed sets the slowest horizontal speed.
func (r *RainConfig) SetMinSpeed(v float32) {
	r.MinSpeed = v
	r.normalizeSpeed()
}

// SetMaxSpeed sets the horizontal speed spread.
func (r *RainConfig) SetMaxSpeed(v float32) {
	r.MaxSpeed = v
	r.normalizeSpeed()
}

// SetSlope sets the drop slope.
func (r *RainConfig) SetSlope(v float32) {
	r.Slope = v
	r.normalizeSlope()
}

// SetDropSize sets the stroke width.
func (r *RainConfig) SetDropSize(n int) {
	r.DropSize = n
	r.normalizeDropSize()
}
