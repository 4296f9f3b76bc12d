package redis

import (
	jsoniter "github.com/json-iterator/go"
)

// Codec converts values to and from the JSON text stored in Redis.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// DefaultCodec is json-iterator configured for encoding/json compatibility.
var DefaultCodec Codec = jsoniter.ConfigCompatibleWithStandardLibrary
