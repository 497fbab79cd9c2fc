package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectsActiveCount(t *testing.T) {
	assert.Equal(t, 0, Effects{}.ActiveCount())
	assert.Equal(t, 1, Effects{NeonLights: true}.ActiveCount())
	assert.Equal(t, 2, Effects{Shake: true, RippleWaves: true}.ActiveCount())
	assert.Equal(t, 4, Effects{Shake: true, NeonLights: true, RippleWaves: true, SparkleParticles: true}.ActiveCount())
}

func TestEffectsValidateAtMostTwo(t *testing.T) {
	assert.NoError(t, Effects{}.Validate())
	assert.NoError(t, Effects{Shake: true, SparkleParticles: true}.Validate())
	assert.Error(t, Effects{Shake: true, NeonLights: true, RippleWaves: true}.Validate())
}

func TestUpdateEffectsRejectsInvalidConfig(t *testing.T) {
	e := NewEvent("Boda Ana y Beto", "")
	require.NoError(t, e.UpdateEffects(Effects{Shake: true, NeonLights: true}))
	assert.True(t, e.Effects.Shake)

	err := e.UpdateEffects(Effects{Shake: true, NeonLights: true, SparkleParticles: true})
	require.Error(t, err)
	assert.False(t, e.Effects.SparkleParticles, "invalid config leaves the event untouched")
}

func TestNewEventDefaults(t *testing.T) {
	e := NewEvent("Quince de Sofi", "")
	assert.Equal(t, "Quince de Sofi", e.DisplayName, "display name falls back to name")
	assert.Len(t, e.Code, 6)
	assert.NoError(t, e.Validate())
	assert.Equal(t, "event-"+e.ID.String(), e.ChannelName())
}

func TestNewCodeUsesUnambiguousAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := NewCode()
		require.Len(t, code, 6)
		for _, r := range code {
			assert.NotContains(t, "01IO", string(r))
		}
	}
}
