package transport

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	apperrors "github.com/agbru/reducebench/internal/errors"
)

// Task is the unit of work sent to a worker process: a contiguous run of
// elements and the name of the kernel to apply to each of them.
type Task struct {
	Worker int
	Kernel string
	Stride int
	Data   []float64
}

// Result is a worker's reply: its partial sum, or the text of the failure
// that prevented it.
type Result struct {
	Worker int
	Sum    float64
	Err    string
}

// Field numbers of the task frame.
const (
	taskWorker protowire.Number = 1
	taskKernel protowire.Number = 2
	taskStride protowire.Number = 3
	taskData   protowire.Number = 4
)

// Field numbers of the result frame.
const (
	resultWorker protowire.Number = 1
	resultSum    protowire.Number = 2
	resultErr    protowire.Number = 3
)

// EncodeTask serializes t in protobuf wire format. Data is a packed
// repeated fixed64 field.
func EncodeTask(t Task) []byte {
	packed := make([]byte, 0, 8*len(t.Data))
	for _, v := range t.Data {
		packed = protowire.AppendFixed64(packed, math.Float64bits(v))
	}

	b := make([]byte, 0, len(packed)+len(t.Kernel)+32)
	b = protowire.AppendTag(b, taskWorker, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Worker))
	b = protowire.AppendTag(b, taskKernel, protowire.BytesType)
	b = protowire.AppendString(b, t.Kernel)
	b = protowire.AppendTag(b, taskStride, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.Stride))
	b = protowire.AppendTag(b, taskData, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b
}

// DecodeTask parses a task frame. Unknown fields are skipped.
func DecodeTask(b []byte) (Task, error) {
	var t Task
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == taskWorker && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			t.Worker = int(x)
			return n, nil
		case num == taskKernel && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(v)
			t.Kernel = s
			return n, nil
		case num == taskStride && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			t.Stride = int(x)
			return n, nil
		case num == taskData && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(v)
			if n < 0 {
				return n, nil
			}
			if len(packed)%8 != 0 {
				return 0, fmt.Errorf("packed data length %d is not a multiple of 8", len(packed))
			}
			t.Data = make([]float64, 0, len(packed)/8)
			for len(packed) > 0 {
				bits, m := protowire.ConsumeFixed64(packed)
				if m < 0 {
					return m, nil
				}
				t.Data = append(t.Data, math.Float64frombits(bits))
				packed = packed[m:]
			}
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, v), nil
	})
	if err != nil {
		return Task{}, apperrors.SerializationError{Subject: "task frame", Cause: err}
	}
	return t, nil
}

// EncodeResult serializes r in protobuf wire format.
func EncodeResult(r Result) []byte {
	b := make([]byte, 0, 24+len(r.Err))
	b = protowire.AppendTag(b, resultWorker, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Worker))
	b = protowire.AppendTag(b, resultSum, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.Sum))
	if r.Err != "" {
		b = protowire.AppendTag(b, resultErr, protowire.BytesType)
		b = protowire.AppendString(b, r.Err)
	}
	return b
}

// DecodeResult parses a result frame.
func DecodeResult(b []byte) (Result, error) {
	var r Result
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == resultWorker && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(v)
			r.Worker = int(x)
			return n, nil
		case num == resultSum && typ == protowire.Fixed64Type:
			bits, n := protowire.ConsumeFixed64(v)
			r.Sum = math.Float64frombits(bits)
			return n, nil
		case num == resultErr && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(v)
			r.Err = s
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, v), nil
	})
	if err != nil {
		return Result{}, apperrors.SerializationError{Subject: "result frame", Cause: err}
	}
	return r, nil
}

// walk iterates over the fields of a frame. field consumes one value and
// returns its length, or a negative protowire error code.
func walk(b []byte, field func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}
