// Package safecast converts loosely typed settings values to fixed size integers without
// silent truncation.
package safecast

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// ToUint8 converts value (a number or numeric string) to uint8, rejecting anything out of range.
func ToUint8(value any) (uint8, error) {
	v, err := cast.ToInt64E(value)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", v)
	}

	return cast.ToUint8E(v)
}

// ToOptionalUint8 is ToUint8 for settings that may be unset. nil and "" yield nil.
func ToOptionalUint8(value any) (*uint8, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.(string); ok && s == "" {
		return nil, nil
	}

	v, err := ToUint8(value)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// ToPositiveInt converts value to an int greater than zero.
func ToPositiveInt(value any) (int, error) {
	v, err := cast.ToIntE(value)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("value %d must be greater than 0", v)
	}

	return v, nil
}
