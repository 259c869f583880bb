package engine

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/ConserveLee/dialogue-skip/internal/constants"
)

// JitterConfig shapes the randomized delays around injected input.
type JitterConfig struct {
	ShortMin time.Duration
	ShortMax time.Duration
	LongMin  time.Duration
	LongMax  time.Duration
	LongOdds int // 1-in-LongOdds delays come from the long range
}

// DefaultJitterConfig returns 120-180ms, or 180-300ms on one roll of a d6.
func DefaultJitterConfig() JitterConfig {
	return JitterConfig{
		ShortMin: constants.ShortDelayMin,
		ShortMax: constants.ShortDelayMax,
		LongMin:  constants.LongDelayMin,
		LongMax:  constants.LongDelayMax,
		LongOdds: constants.LongDelayOdds,
	}
}

// Jitter produces human-looking delays and cursor targets. Not safe for concurrent use.
type Jitter struct {
	cfg JitterConfig
	rng *rand.Rand
}

// NewJitter creates a Jitter seeded from the runtime's random source.
func NewJitter(cfg JitterConfig) *Jitter {
	return NewJitterWithRand(cfg, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewJitterWithRand creates a Jitter on a caller-supplied source.
func NewJitterWithRand(cfg JitterConfig, rng *rand.Rand) *Jitter {
	if cfg.LongOdds < 1 {
		cfg.LongOdds = 1
	}
	return &Jitter{cfg: cfg, rng: rng}
}

// Delay returns a duration in [ShortMin, ShortMax), or in [LongMin, LongMax)
// when the die roll comes up LongOdds.
func (j *Jitter) Delay() time.Duration {
	if j.rng.IntN(j.cfg.LongOdds)+1 == j.cfg.LongOdds {
		return j.uniform(j.cfg.LongMin, j.cfg.LongMax)
	}
	return j.uniform(j.cfg.ShortMin, j.cfg.ShortMax)
}

func (j *Jitter) uniform(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(j.rng.Float64()*float64(hi-lo))
}

// PointIn returns a uniformly random point inside r (half-open, like image.Rectangle).
func (j *Jitter) PointIn(r image.Rectangle) image.Point {
	if r.Empty() {
		return r.Min
	}
	return image.Pt(r.Min.X+j.rng.IntN(r.Dx()), r.Min.Y+j.rng.IntN(r.Dy()))
}
