// Package codec is the single serialization seam for component values. Every
// byte that enters or leaves a component storage passes through Encode or
// Decode, so changing the wire encoding means changing exactly this package.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Decode unmarshals a stored payload back into a concrete component value.
// A payload that does not describe a T is an error; nothing is partially
// decoded.
func Decode[T any](bz []byte) (T, error) {
	comp := new(T)
	if err := json.Unmarshal(bz, comp); err != nil {
		return *comp, eris.Wrap(err, "failed to decode component payload")
	}
	return *comp, nil
}

// Encode marshals a component value into the payload form the storages hold.
func Encode(comp any) ([]byte, error) {
	bz, err := json.Marshal(comp)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode component value")
	}
	return bz, nil
}
