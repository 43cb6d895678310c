package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// CLType is the type tag of a session argument understood by the node client.
type CLType struct {
	// Simple is set for scalar types such as "String" or "U8".
	Simple string
	// List is set for list types and names the element type.
	List string
}

var (
	CLString  = CLType{Simple: "String"}
	CLBool    = CLType{Simple: "Bool"}
	CLU8      = CLType{Simple: "U8"}
	CLU256    = CLType{Simple: "U256"}
	CLKey     = CLType{Simple: "Key"}
	CLListKey = CLType{List: "Key"}
)

func (t CLType) String() string {
	if t.List != "" {
		return "List<" + t.List + ">"
	}

	return t.Simple
}

// MarshalJSON encodes scalar types as a string and list types as {"List": "<elem>"}.
func (t CLType) MarshalJSON() ([]byte, error) {
	if t.List != "" {
		return json.Marshal(map[string]string{"List": t.List})
	}
	if t.Simple == "" {
		return nil, fmt.Errorf("empty cl type")
	}

	return json.Marshal(t.Simple)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *CLType) UnmarshalJSON(b []byte) error {
	var simple string
	if err := json.Unmarshal(b, &simple); err == nil {
		*t = CLType{Simple: simple}
		return nil
	}

	var list map[string]string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("invalid cl type %s: %w", b, err)
	}
	elem, ok := list["List"]
	if !ok || len(list) != 1 {
		return fmt.Errorf("invalid cl type %s", b)
	}
	*t = CLType{List: elem}

	return nil
}

// SessionArg is a single named, typed argument of a session.
type SessionArg struct {
	Name  string `json:"name"`
	Type  CLType `json:"type"`
	Value any    `json:"value"`
}

// StringArg builds a String argument.
func StringArg(name, value string) SessionArg {
	return SessionArg{Name: name, Type: CLString, Value: value}
}

// BoolArg builds a Bool argument.
func BoolArg(name string, value bool) SessionArg {
	return SessionArg{Name: name, Type: CLBool, Value: value}
}

// U8Arg builds a U8 argument.
func U8Arg(name string, value uint8) SessionArg {
	return SessionArg{Name: name, Type: CLU8, Value: value}
}

// U256Arg builds a U256 argument. Big integers are passed as decimal strings.
func U256Arg(name string, value *uint256.Int) SessionArg {
	return SessionArg{Name: name, Type: CLU256, Value: value.Dec()}
}

// KeyArg builds a Key argument.
func KeyArg(name string, key AccountKey) SessionArg {
	return SessionArg{Name: name, Type: CLKey, Value: key.String()}
}

// KeyListArg builds a List<Key> argument.
func KeyListArg(name string, keys []AccountKey) SessionArg {
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = k.String()
	}

	return SessionArg{Name: name, Type: CLListKey, Value: values}
}

// ParseU256 parses a decimal string into a 256 bit unsigned integer.
func ParseU256(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal integer %q", s)
	}
	if b.Sign() < 0 {
		return nil, fmt.Errorf("negative value %q", s)
	}

	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("value %q exceeds 256 bits", s)
	}

	return v, nil
}
