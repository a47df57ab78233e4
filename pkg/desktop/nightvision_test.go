package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleNightVision_Scenario(t *testing.T) {
	f := newFixture(t, options(3, 0, 0))

	assert.Equal(t, 1, f.d.ToggleNightVision())
	assert.Equal(t, alert{AlertInfo, "NV Enabled"}, f.alerts.last())

	assert.Equal(t, 2, f.d.ToggleNightVision())
	assert.Equal(t, alert{AlertInfo, "NV Gain + 1"}, f.alerts.last())

	assert.Equal(t, 3, f.d.ToggleNightVision())
	assert.Equal(t, alert{AlertInfo, "NV Gain + 2"}, f.alerts.last())

	assert.Equal(t, 0, f.d.ToggleNightVision())
	assert.Equal(t, alert{AlertInfo, "NV Disabled"}, f.alerts.last())
}

func TestToggleNightVision_Cycle(t *testing.T) {
	for nvMax := 0; nvMax <= 5; nvMax++ {
		for start := 0; start <= nvMax; start++ {
			f := newFixture(t, options(nvMax, start, 0))

			// wraps to off after nvMax - start + 1 presses
			for i := 0; i < nvMax-start+1; i++ {
				f.d.ToggleNightVision()
				require.GreaterOrEqual(t, f.d.NightVisionGain(), 0)
				require.LessOrEqual(t, f.d.NightVisionGain(), nvMax)
			}
			assert.Equal(t, 0, f.d.NightVisionGain(), "max %d start %d", nvMax, start)

			// and a full cycle returns to the start
			for i := 0; i < start; i++ {
				f.d.ToggleNightVision()
			}
			assert.Equal(t, start, f.d.NightVisionGain(), "max %d start %d", nvMax, start)
		}
	}
}

func TestToggleNightVision_ZeroMaxStaysOff(t *testing.T) {
	f := newFixture(t, options(0, 0, 0))

	assert.Equal(t, 0, f.d.ToggleNightVision())
	assert.Equal(t, alert{AlertInfo, "NV Disabled"}, f.alerts.last())
}

func TestToggleNightVision_Keybind(t *testing.T) {
	f := newFixture(t, options(2, 0, 0))

	f.keys.binds[DefaultNightVisionKey].fn()
	assert.Equal(t, 1, f.d.NightVisionGain())
}

func TestToggleNightVision_WithoutAlerter(t *testing.T) {
	d, err := New(fakeDisplay{}, Deps{
		Device:  newFakeDevice(),
		Shaders: testShaders,
		Options: options(1, 0, 0),
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() { d.ToggleNightVision() })
	assert.Equal(t, 1, d.NightVisionGain())
}
