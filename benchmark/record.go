package benchmark

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/types"
	"github.com/pkg/errors"
)

// Record is the payload stored by every backend. Byte oriented backends
// store its protobuf encoding, the others store the pointer.
type Record struct {
	ID      uint64
	Name    string
	Payload *types.Struct
}

// Key returns the cache key of record num.
func Key(num int) string {
	return fmt.Sprintf("test_key_%d", num)
}

// NewRecord builds the deterministic record of num together with its key.
func NewRecord(num int) (string, *Record) {
	child := &types.Struct{Fields: map[string]*types.Value{
		"id":    numberValue(float64(num + 1000)),
		"name":  stringValue(fmt.Sprintf("pb_child_string_%d", num)),
		"bytes": stringValue(fmt.Sprintf("bytes1_%d", num)),
		"tags": listValue(
			stringValue(fmt.Sprintf("pb_child_str1_%d", num)),
			stringValue(fmt.Sprintf("pb_child_str2_%d", num)),
			stringValue(fmt.Sprintf("pb_child_str3_%d", num)),
		),
	}}

	payload := &types.Struct{Fields: map[string]*types.Value{
		"id":   numberValue(float64(num)),
		"name": stringValue(fmt.Sprintf("test_name_%d", num)),
		"tags": listValue(
			stringValue(fmt.Sprintf("pb_str1_%d", num)),
			stringValue(fmt.Sprintf("pb_str2_%d", num)),
		),
		"counts": listValue(
			numberValue(float64(num*1000)),
			numberValue(float64(num*2000)),
		),
		"scores": listValue(
			numberValue(float64(num)*10.1),
			numberValue(float64(num)*20.2),
		),
		"child": {Kind: &types.Value_StructValue{StructValue: child}},
		"live":  {Kind: &types.Value_BoolValue{BoolValue: num%2 == 0}},
	}}

	return Key(num), &Record{
		ID:      uint64(num),
		Name:    fmt.Sprintf("test_name_%d", num),
		Payload: payload,
	}
}

// Encode marshals the payload of r.
func Encode(r *Record) ([]byte, error) {
	if r == nil || r.Payload == nil {
		return nil, errors.New("record has no payload")
	}
	return proto.Marshal(r.Payload)
}

// Decode rebuilds a record from its encoded payload.
func Decode(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, errors.New("empty record")
	}

	payload := &types.Struct{}
	if err := proto.Unmarshal(data, payload); err != nil {
		return nil, errors.Wrap(err, "unmarshal record")
	}

	return &Record{
		ID:      uint64(payload.Fields["id"].GetNumberValue()),
		Name:    payload.Fields["name"].GetStringValue(),
		Payload: payload,
	}, nil
}

// Check compares r with the record NewRecord(num) produces.
func Check(num int, r *Record) error {
	if r == nil {
		return errors.Errorf("record %d is nil", num)
	}

	_, want := NewRecord(num)
	if r.ID != want.ID {
		return errors.Errorf("record %d: id mismatch, got %d", num, r.ID)
	}
	if r.Name != want.Name {
		return errors.Errorf("record %d: name mismatch, got %s, want %s", num, r.Name, want.Name)
	}
	if !proto.Equal(r.Payload, want.Payload) {
		return errors.Errorf("record %d: payload mismatch", num)
	}
	return nil
}

func numberValue(v float64) *types.Value {
	return &types.Value{Kind: &types.Value_NumberValue{NumberValue: v}}
}

func stringValue(v string) *types.Value {
	return &types.Value{Kind: &types.Value_StringValue{StringValue: v}}
}

func listValue(vs ...*types.Value) *types.Value {
	return &types.Value{Kind: &types.Value_ListValue{ListValue: &types.ListValue{Values: vs}}}
}
