package service

import (
	"github.com/fxamacker/cbor/v2"
)

// Payloads are encoded with canonical CBOR so the same record always produces
// the same plaintext bytes. Decoding is strict: unknown fields and duplicate
// keys are rejected, which turns a payload of the wrong kind into an error
// instead of a half-filled record.
var (
	payloadEncMode = mustEncMode()
	payloadDecMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

func encodePayload(v any) ([]byte, error) {
	return payloadEncMode.Marshal(v)
}

func decodePayload(data []byte, v any) error {
	return payloadDecMode.Unmarshal(data, v)
}
