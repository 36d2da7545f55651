package grpcsvc

import (
	"google.golang.org/grpc/encoding"

	"ledgerd/codec"
)

// CodecName is the content subtype the service's messages travel under.
const CodecName = "cbor"

type cborCodec struct{}

func (cborCodec) Marshal(v any) ([]byte, error) {
	return codec.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return codec.Unmarshal(data, v)
}

func (cborCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(cborCodec{})
}
