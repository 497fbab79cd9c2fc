package wall

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/domain/message"
)

// EffectKind identifies one of the four visual effects
type EffectKind byte

const (
	EffectShake EffectKind = iota
	EffectNeonLights
	EffectRippleWaves
	EffectSparkleParticles
)

func (k EffectKind) String() string {
	switch k {
	case EffectShake:
		return "shake"
	case EffectNeonLights:
		return "neonLights"
	case EffectRippleWaves:
		return "rippleWaves"
	case EffectSparkleParticles:
		return "sparkleParticles"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaler interface
func (k EffectKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Effect lifetimes. Sparkle fires its particles radially over its lifetime.
const (
	ShakeDuration        = time.Second
	NeonLightsDuration   = 3 * time.Second
	RippleWavesDuration  = 2 * time.Second
	SparkleDuration      = 1500 * time.Millisecond
	SparkleParticleCount = 20
)

func (k EffectKind) duration() time.Duration {
	switch k {
	case EffectShake:
		return ShakeDuration
	case EffectNeonLights:
		return NeonLightsDuration
	case EffectRippleWaves:
		return RippleWavesDuration
	case EffectSparkleParticles:
		return SparkleDuration
	default:
		return time.Second
	}
}

// Position anchors an effect at the rendered message's screen coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EffectInstance is one ephemeral effect run. It is never persisted and is
// dropped once its TTL elapses.
type EffectInstance struct {
	ID        string        `json:"id"`
	Kind      EffectKind    `json:"kind"`
	MessageID string        `json:"messageId"`
	Position  Position      `json:"position"`
	Particles int           `json:"particles,omitempty"`
	SpawnedAt time.Time     `json:"spawnedAt"`
	TTL       time.Duration `json:"ttl"`
}

// ExpiresAt returns the instant the instance stops rendering
func (i EffectInstance) ExpiresAt() time.Time {
	return i.SpawnedAt.Add(i.TTL)
}

// Expired reports whether the instance is past its lifetime
func (i EffectInstance) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt())
}

// Dispatcher turns live approval transitions into effect instances. Messages
// that were already approved when observation began never fire: the first
// Observe call only primes the handled set.
type Dispatcher struct {
	locate func(messageID string) Position
	now    func() time.Time

	mu      sync.Mutex
	handled map[string]struct{}
	active  []EffectInstance
	primed  bool
}

// NewDispatcher creates a dispatcher. locate maps a message id to its
// rendered position and may be nil when the renderer anchors by id itself.
func NewDispatcher(locate func(messageID string) Position) *Dispatcher {
	return &Dispatcher{
		locate:  locate,
		now:     time.Now,
		handled: make(map[string]struct{}),
	}
}

// Observe diffs the view's approved ids against the handled set and spawns
// instances for every newly-approved message and enabled effect. The
// at-most-two rule is enforced upstream where the config is mutated.
func (d *Dispatcher) Observe(view []message.Message, fx event.Effects) []EffectInstance {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.primed {
		for i := range view {
			if view[i].Status == message.StatusApproved {
				d.handled[view[i].ID] = struct{}{}
			}
		}
		d.primed = true
		return nil
	}

	var spawned []EffectInstance
	now := d.now()
	for i := range view {
		m := &view[i]
		if m.Status != message.StatusApproved {
			continue
		}
		if _, done := d.handled[m.ID]; done {
			continue
		}
		d.handled[m.ID] = struct{}{}

		for _, kind := range enabledKinds(fx) {
			inst := EffectInstance{
				ID:        "fx_" + uuid.NewString(),
				Kind:      kind,
				MessageID: m.ID,
				SpawnedAt: now,
				TTL:       kind.duration(),
			}
			if kind == EffectSparkleParticles {
				inst.Particles = SparkleParticleCount
			}
			if d.locate != nil {
				inst.Position = d.locate(m.ID)
			}
			spawned = append(spawned, inst)
		}
	}

	d.active = append(d.active, spawned...)
	return spawned
}

// Active prunes expired instances and returns the ones still rendering.
// Meant to be called once per render tick.
func (d *Dispatcher) Active() []EffectInstance {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	alive := d.active[:0]
	for _, inst := range d.active {
		if !inst.Expired(now) {
			alive = append(alive, inst)
		}
	}
	d.active = alive

	out := make([]EffectInstance, len(alive))
	copy(out, alive)
	return out
}

func enabledKinds(fx event.Effects) []EffectKind {
	var kinds []EffectKind
	if fx.Shake {
		kinds = append(kinds, EffectShake)
	}
	if fx.NeonLights {
		kinds = append(kinds, EffectNeonLights)
	}
	if fx.RippleWaves {
		kinds = append(kinds, EffectRippleWaves)
	}
	if fx.SparkleParticles {
		kinds = append(kinds, EffectSparkleParticles)
	}
	return kinds
}
