package config

import (
	"github.com/conneroisu/webnav/internal/errors"
)

// Layer identifies where a value was set. Lower layers win: a temporary
// override beats the config file, which beats the built-in default.
type Layer int

const (
	// LayerTemp holds temporary overrides (`set --temp`), lost on exit.
	LayerTemp Layer = iota
	// LayerConf holds values from the config file, environment, and flags.
	LayerConf
	// LayerDefault holds the built-in default from the definition table.
	LayerDefault

	numLayers
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTemp:
		return "temp"
	case LayerConf:
		return "conf"
	case LayerDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Value is a single setting with per-layer raw values. Reads return the
// most significant layer that has been set.
type Value struct {
	typ    Type
	layers [numLayers]*string
}

// NewValue creates a value of the given type with a built-in default. The
// default is validated eagerly so a broken definition table fails loudly.
func NewValue(typ Type, defaultValue string) (*Value, error) {
	if err := typ.Validate(defaultValue); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid_default",
			"default value does not validate")
	}
	v := &Value{typ: typ}
	v.layers[LayerDefault] = &defaultValue
	return v, nil
}

// Type returns the value's type.
func (v *Value) Type() Type {
	return v.typ
}

// Get returns the currently valid value: the first set layer, most
// significant first.
func (v *Value) Get() string {
	s, _ := v.GetFrom(LayerTemp)
	return s
}

// GetFrom returns the first set value starting at the given layer. The
// second return value is false when no layer from start onward is set.
func (v *Value) GetFrom(start Layer) (string, bool) {
	for layer := start; layer < numLayers; layer++ {
		if raw := v.layers[layer]; raw != nil {
			return *raw, true
		}
	}
	return "", false
}

// Default returns the built-in default, or the empty string for values
// created dynamically (custom search engines have no default).
func (v *Value) Default() string {
	if raw := v.layers[LayerDefault]; raw != nil {
		return *raw
	}
	return ""
}

// Set validates raw against the value's type and stores it on the given
// layer.
func (v *Value) Set(layer Layer, raw string) error {
	if layer < 0 || layer >= numLayers {
		return errors.Newf(errors.ErrorTypeConfig, "invalid_layer",
			"no such layer: %d", layer)
	}
	if err := v.typ.Validate(raw); err != nil {
		return err
	}
	value := raw
	v.layers[layer] = &value
	return nil
}

// Clear removes the value on a layer. Clearing the default layer is not
// allowed; every value keeps its built-in default.
func (v *Value) Clear(layer Layer) error {
	if layer == LayerDefault {
		return errors.New(errors.ErrorTypeConfig, "invalid_layer",
			"the default layer cannot be cleared")
	}
	if layer < 0 || layer >= numLayers {
		return errors.Newf(errors.ErrorTypeConfig, "invalid_layer",
			"no such layer: %d", layer)
	}
	v.layers[layer] = nil
	return nil
}
