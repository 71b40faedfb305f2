//go:build property
// +build property

package config

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestValueProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: a successful set followed by a get returns the set value.
	properties.Property("set/get round-trip", prop.ForAll(
		func(raw string) bool {
			value, err := NewValue(StringType{}, "default")
			if err != nil {
				return false
			}
			if err := value.Set(LayerConf, raw); err != nil {
				return false
			}
			return value.Get() == raw
		},
		gen.AnyString(),
	))

	// Property: temp always shadows conf, conf always shadows default.
	properties.Property("layer precedence", prop.ForAll(
		func(confVal, tempVal string) bool {
			value, err := NewValue(StringType{}, "default")
			if err != nil {
				return false
			}
			if err := value.Set(LayerConf, confVal); err != nil {
				return false
			}
			if value.Get() != confVal {
				return false
			}
			if err := value.Set(LayerTemp, tempVal); err != nil {
				return false
			}
			return value.Get() == tempVal
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	// Property: a failed set never changes the visible value.
	properties.Property("failed set leaves value intact", prop.ForAll(
		func(raw string) bool {
			value, err := NewValue(EnumType{Valid: []string{"naive", "dns", "false"}}, "naive")
			if err != nil {
				return false
			}
			before := value.Get()
			if err := value.Set(LayerConf, raw); err != nil {
				return value.Get() == before
			}
			return value.Get() == raw
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
