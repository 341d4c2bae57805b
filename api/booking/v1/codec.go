package bookingv1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Codec marshals Message types by hand and anything generated by protoc
// through the protobuf runtime. It is installed per server/connection
// (grpc.ForceServerCodec, grpc.ForceCodec) rather than registered globally.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		return m.AppendWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("bookingv1: cannot marshal %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("bookingv1: cannot unmarshal into %T", v)
}

// Name matches the content-subtype browsers and grpcurl send.
func (Codec) Name() string { return "proto" }
