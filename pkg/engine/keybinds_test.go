package engine

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    glfw.Key
		wantErr bool
	}{
		{"N", glfw.KeyN, false},
		{"n", glfw.KeyN, false},
		{"7", glfw.Key7, false},
		{"F1", glfw.KeyF1, false},
		{"f12", glfw.KeyF12, false},
		{"Escape", glfw.KeyEscape, false},
		{" space ", glfw.KeySpace, false},
		{"F0", glfw.KeyUnknown, true},
		{"F26", glfw.KeyUnknown, true},
		{"F1x", glfw.KeyUnknown, true},
		{"Hyper", glfw.KeyUnknown, true},
		{"", glfw.KeyUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeybinds_Dispatch(t *testing.T) {
	k := NewKeybinds()
	count := 0
	require.NoError(t, k.Bind("N", "Toggle night vision mode", func() { count++ }))

	assert.True(t, k.Dispatch(glfw.KeyN, glfw.Press))
	assert.False(t, k.Dispatch(glfw.KeyN, glfw.Repeat))
	assert.False(t, k.Dispatch(glfw.KeyN, glfw.Release))
	assert.False(t, k.Dispatch(glfw.KeyM, glfw.Press))
	assert.Equal(t, 1, count)

	k.Callback(nil, glfw.KeyN, 0, glfw.Press, 0)
	assert.Equal(t, 2, count)
}

func TestKeybinds_BindErrors(t *testing.T) {
	k := NewKeybinds()
	require.NoError(t, k.Bind("R", "Rotate", func() {}))

	assert.Error(t, k.Bind("r", "Again", func() {}))
	assert.Error(t, k.Bind("Hyper", "Unknown", func() {}))
	assert.Error(t, k.Bind("Q", "Nothing", nil))
}

func TestKeybinds_Describe(t *testing.T) {
	k := NewKeybinds()
	require.NoError(t, k.Bind("n", "Toggle night vision mode", func() {}))
	require.NoError(t, k.Bind("Escape", "Quit", func() {}))

	assert.Equal(t, []string{
		"ESCAPE: Quit",
		"N: Toggle night vision mode",
	}, k.Describe())
}
