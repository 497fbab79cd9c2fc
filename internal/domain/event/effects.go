package event

import "fmt"

// MaxActiveEffects is the maximum number of visual effects that may be
// enabled at the same time.
const MaxActiveEffects = 2

// Effects is the per-event visual effect configuration toggled by the admin.
// The JSON keys are part of the wire contract with viewers.
type Effects struct {
	Shake            bool `json:"shake" gorm:"default:false"`
	NeonLights       bool `json:"neonLights" gorm:"default:false"`
	RippleWaves      bool `json:"rippleWaves" gorm:"default:false"`
	SparkleParticles bool `json:"sparkleParticles" gorm:"default:false"`
}

// ActiveCount returns how many effects are enabled
func (e Effects) ActiveCount() int {
	count := 0
	for _, enabled := range []bool{e.Shake, e.NeonLights, e.RippleWaves, e.SparkleParticles} {
		if enabled {
			count++
		}
	}
	return count
}

// Validate enforces the at-most-two rule at the point of mutation
func (e Effects) Validate() error {
	if n := e.ActiveCount(); n > MaxActiveEffects {
		return fmt.Errorf("at most %d effects may be active, got %d", MaxActiveEffects, n)
	}
	return nil
}
