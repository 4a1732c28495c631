package random

import (
	"math/rand"
	"sync"

	"github.com/theMomax/weathersim/config"
	timeutils "github.com/theMomax/weathersim/utils/time"
)

// Config paths
const (
	PathSeed = "random.seed"
)

func init() {
	config.RootCtx.PersistentFlags().Int64(PathSeed, 0, "seed for the random source (0 seeds from the clock, making every run different)")
	config.Viper.BindPFlag(PathSeed, config.RootCtx.PersistentFlags().Lookup(PathSeed))
}

// Source provides the random draws the weather models are built on.
type Source interface {
	// Uniform returns a value drawn uniformly from [min, max].
	Uniform(min, max float64) float64
}

// Rand is a Source backed by math/rand. It is safe for concurrent use.
type Rand struct {
	r *rand.Rand
	m *sync.Mutex
}

// New returns a Rand seeded with seed.
func New(seed int64) *Rand {
	return &Rand{
		r: rand.New(rand.NewSource(seed)),
		m: &sync.Mutex{},
	}
}

// NewFromConfig returns a Rand seeded as configured. A seed of 0 is replaced by
// the current time.
func NewFromConfig() *Rand {
	seed := config.Viper.GetInt64(PathSeed)
	if seed == 0 {
		seed = timeutils.Now().UnixNano()
	}
	return New(seed)
}

// Uniform returns a value drawn uniformly from [min, max]. The bounds may be
// given in either order.
func (r *Rand) Uniform(min, max float64) float64 {
	r.m.Lock()
	f := r.r.Float64()
	r.m.Unlock()
	return min + (max-min)*f
}
