package encoding

import (
	"github.com/vmihailenco/msgpack/v4"
)

// MsgPack is a MsgPackCodec.
var MsgPack = MsgPackCodec{}

// MsgPackCodec encodes/decodes Go values to/from MessagePack.
// You can use encoding.MsgPack instead of creating an instance of this struct.
type MsgPackCodec struct{}

// Marshal encodes a Go value to MessagePack.
func (c MsgPackCodec) Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes a MessagePack value into a Go value.
func (c MsgPackCodec) Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
