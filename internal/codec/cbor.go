// Package codec encodes ladders as CBOR for compact ladder files.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The same
// ladder always produces identical bytes. Field names follow the JSON tags
// of the ladder types, so a CBOR file and a JSON file carry the same keys.
package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/roach88/amida/internal/ladder"
)

var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Duplicate map keys are an error, not last-one-wins.
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// MarshalLadder encodes l.
func MarshalLadder(l ladder.Ladder) ([]byte, error) {
	return Marshal(l)
}

// UnmarshalLadder decodes a ladder. It does not validate it.
func UnmarshalLadder(data []byte) (ladder.Ladder, error) {
	var l ladder.Ladder
	if err := Unmarshal(data, &l); err != nil {
		return ladder.Ladder{}, err
	}
	return l, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
