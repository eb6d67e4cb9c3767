// Package canonjson produces the canonical JSON encoding this node hashes and
// signs against: keys sorted lexicographically at every depth. encoding/json
// already sorts map[string]interface{} keys when marshaling, so canonicalizing
// is a decode-to-generic-then-reencode round trip.
package canonjson

import "encoding/json"

// Marshal returns v's canonical JSON form.
func Marshal(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// MustMarshal panics on encode failure. Only for values whose JSON shape is
// controlled by this package (blocks, transactions) and cannot fail to encode.
func MustMarshal(v interface{}) []byte {
	b, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
