package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a MessagePack codec backed by github.com/vmihailenco/msgpack/v5.
//
// Untyped numbers decode to the narrowest msgpack type that was written
// (int8, uint16, float32, float64, ...). Struct fields use the `msgpack` tag.
type Msgpack struct{}

// Marshal encodes the value to MessagePack.
func (Msgpack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

// Unmarshal decodes the MessagePack data into v.
func (Msgpack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// Name returns the unique name of the codec ("msgpack").
func (Msgpack) Name() string { return "msgpack" }
