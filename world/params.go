package world

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/goccy/go-yaml"
)

// SimulationVersion identifies the behavior of World.Step. Two executables
// with the same SimulationVersion produce the same World for the same Level,
// Params and sequence of PlayerInput. It must change every time a change in
// the simulation would make an old playthrough play out differently.
const SimulationVersion = 2

// FixedDt is the logical duration of one simulation step. The simulation
// always advances by exactly this much, no matter what delta the host frame
// callback reports, so that playthroughs replay identically.
const FixedDt = time.Second / 60

// fixedDtSeconds is FixedDt as used by the integrator.
const fixedDtSeconds = 1.0 / 60.0

// Default sizes of the entities, in pixels.
const (
	CandyRadius  = 25.0
	GoalRadius   = 40.0
	AnchorRadius = 8.0
	StarRadius   = 20.0
)

// Params holds the tunable constants of the simulation. They are part of a
// playthrough: the same level replayed with different Params is a different
// playthrough.
type Params struct {
	GravityX float64 `yaml:"GravityX"`
	GravityY float64 `yaml:"GravityY"`

	PositionIterations int64 `yaml:"PositionIterations"`
	VelocityIterations int64 `yaml:"VelocityIterations"`

	CandyRadius      float64 `yaml:"CandyRadius"`
	CandyDensity     float64 `yaml:"CandyDensity"`
	CandyRestitution float64 `yaml:"CandyRestitution"`
	CandyFriction    float64 `yaml:"CandyFriction"`
	CandyAirFriction float64 `yaml:"CandyAirFriction"`

	RopeStiffness float64 `yaml:"RopeStiffness"`
	RopeDamping   float64 `yaml:"RopeDamping"`

	// CutThreshold is how close a touch must get to a rope to cut it.
	CutThreshold float64 `yaml:"CutThreshold"`
	// CutParamMin and CutParamMax bound where along a rope the cut point can
	// be. They keep the frayed ends away from the anchor and the candy.
	CutParamMin float64 `yaml:"CutParamMin"`
	CutParamMax float64 `yaml:"CutParamMax"`

	// BubbleRiseSpeed is the upward speed a captured candy drifts towards,
	// in pixels per second.
	BubbleRiseSpeed float64 `yaml:"BubbleRiseSpeed"`
	// BubbleDrive is how quickly (1/s) a captured candy reaches the rise
	// speed.
	BubbleDrive float64 `yaml:"BubbleDrive"`

	WindRange    float64 `yaml:"WindRange"`
	WindStrength float64 `yaml:"WindStrength"`

	// BoundsMargin is how far outside the level bounds the candy may go
	// before the level is lost.
	BoundsMargin float64 `yaml:"BoundsMargin"`
}

// DefaultParams returns the canonical constants of the game.
func DefaultParams() Params {
	return Params{
		GravityX:           0,
		GravityY:           1800,
		PositionIterations: 6,
		VelocityIterations: 4,
		CandyRadius:        CandyRadius,
		CandyDensity:       0.001,
		CandyRestitution:   0.4,
		CandyFriction:      0.1,
		CandyAirFriction:   0.005,
		RopeStiffness:      0.9,
		RopeDamping:        0.05,
		CutThreshold:       60,
		CutParamMin:        0.1,
		CutParamMax:        0.9,
		BubbleRiseSpeed:    120,
		BubbleDrive:        4,
		WindRange:          200,
		WindStrength:       2400,
		BoundsMargin:       100,
	}
}

func (p *Params) Gravity() Pt {
	return Pt{X: p.GravityX, Y: p.GravityY}
}

// Validate checks that the params cannot make the simulation misbehave.
func (p *Params) Validate() error {
	if !finiteNums(p.GravityX, p.GravityY, p.CandyRadius, p.CandyDensity,
		p.CandyRestitution, p.CandyFriction, p.CandyAirFriction,
		p.RopeStiffness, p.RopeDamping, p.CutThreshold, p.CutParamMin,
		p.CutParamMax, p.BubbleRiseSpeed, p.BubbleDrive, p.WindRange,
		p.WindStrength, p.BoundsMargin) {
		return fmt.Errorf("%w: every number must be finite", ErrInvalidParams)
	}
	if p.PositionIterations < 1 || p.VelocityIterations < 0 {
		return fmt.Errorf("%w: need at least 1 position iteration and no "+
			"negative velocity iterations, got %d and %d", ErrInvalidParams,
			p.PositionIterations, p.VelocityIterations)
	}
	if p.CandyRadius <= 0 || p.CandyDensity <= 0 {
		return fmt.Errorf("%w: candy radius and density must be positive",
			ErrInvalidParams)
	}
	if p.CandyAirFriction < 0 || p.CandyAirFriction >= 1 {
		return fmt.Errorf("%w: air friction must be in [0, 1), got %f",
			ErrInvalidParams, p.CandyAirFriction)
	}
	if p.CandyRestitution < 0 || p.CandyRestitution > 1 {
		return fmt.Errorf("%w: restitution must be in [0, 1], got %f",
			ErrInvalidParams, p.CandyRestitution)
	}
	if err := validateRopeConstants(p.RopeStiffness, p.RopeDamping); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if p.CutParamMin < 0 || p.CutParamMax > 1 || p.CutParamMin > p.CutParamMax {
		return fmt.Errorf("%w: cut clamp [%f, %f] must lie inside [0, 1]",
			ErrInvalidParams, p.CutParamMin, p.CutParamMax)
	}
	if p.CutThreshold < 0 || p.WindRange <= 0 || p.BoundsMargin < 0 {
		return fmt.Errorf("%w: cut threshold, wind range and bounds margin "+
			"must not be negative", ErrInvalidParams)
	}
	return nil
}

func validateRopeConstants(stiffness, damping float64) error {
	if stiffness <= 0 || stiffness > 1 {
		return fmt.Errorf("rope stiffness must be in (0, 1], got %f", stiffness)
	}
	if damping < 0 || damping >= 1 {
		return fmt.Errorf("rope damping must be in [0, 1), got %f", damping)
	}
	return nil
}

// LoadParams reads Params from a YAML file. Fields missing from the file
// keep their default values.
func LoadParams(fsys fs.FS, name string) (Params, error) {
	p := DefaultParams()
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return p, err
	}
	if err = yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing %s: %w", name, err)
	}
	if err = p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}
