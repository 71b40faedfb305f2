package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueLayering(t *testing.T) {
	value, err := NewValue(StringType{}, "default-value")
	require.NoError(t, err)

	assert.Equal(t, "default-value", value.Get())

	require.NoError(t, value.Set(LayerConf, "from-config"))
	assert.Equal(t, "from-config", value.Get())

	require.NoError(t, value.Set(LayerTemp, "temporary"))
	assert.Equal(t, "temporary", value.Get())

	// Clearing the temp layer falls back to the conf layer, then default.
	require.NoError(t, value.Clear(LayerTemp))
	assert.Equal(t, "from-config", value.Get())
	require.NoError(t, value.Clear(LayerConf))
	assert.Equal(t, "default-value", value.Get())
}

func TestValueGetFrom(t *testing.T) {
	value, err := NewValue(StringType{}, "dflt")
	require.NoError(t, err)
	require.NoError(t, value.Set(LayerTemp, "tmp"))

	got, ok := value.GetFrom(LayerConf)
	assert.True(t, ok)
	assert.Equal(t, "dflt", got, "GetFrom skips more significant layers")

	got, ok = value.GetFrom(LayerTemp)
	assert.True(t, ok)
	assert.Equal(t, "tmp", got)
}

func TestValueSetValidates(t *testing.T) {
	value, err := NewValue(BoolType{}, "true")
	require.NoError(t, err)

	assert.Error(t, value.Set(LayerConf, "maybe"))
	assert.Equal(t, "true", value.Get(), "failed set must not change the value")

	require.NoError(t, value.Set(LayerConf, "false"))
	assert.Equal(t, "false", value.Get())
}

func TestValueInvalidDefault(t *testing.T) {
	_, err := NewValue(BoolType{}, "not-a-bool")
	assert.Error(t, err)
}

func TestValueClearDefault(t *testing.T) {
	value, err := NewValue(StringType{}, "x")
	require.NoError(t, err)
	assert.Error(t, value.Clear(LayerDefault))
}

func TestLayerString(t *testing.T) {
	assert.Equal(t, "temp", LayerTemp.String())
	assert.Equal(t, "conf", LayerConf.String())
	assert.Equal(t, "default", LayerDefault.String())
}
