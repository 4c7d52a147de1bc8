package zmf

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/zerfoo/float16"
	"github.com/zerfoo/xform/ir"
	"github.com/zerfoo/zmf"
	"google.golang.org/protobuf/proto"
)

// Encode converts a transformed ir.Graph plus the CompileOption it was
// compiled under into a zmf.Model, the inverse of Decode.
func Encode(g *ir.Graph, opt *ir.CompileOption) (*zmf.Model, error) {
	graph := &zmf.Graph{
		Parameters: make(map[string]*zmf.Tensor, len(g.Consts)),
	}

	for name, t := range g.Consts {
		graph.Parameters[name] = encodeTensor(t, opt.DataType)
	}

	graph.Nodes = make([]*zmf.Node, 0, len(g.Ops))
	for _, op := range g.Ops {
		node, err := encodeNode(op)
		if err != nil {
			return nil, err
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	for _, in := range opt.Inputs {
		graph.Inputs = append(graph.Inputs, &zmf.ValueInfo{
			Name:  in.Name,
			Shape: intsToInt64s(in.Shape),
		})
	}
	for _, name := range opt.Outputs {
		graph.Outputs = append(graph.Outputs, &zmf.ValueInfo{Name: name})
	}

	return &zmf.Model{ZmfVersion: "1.0.0", Graph: graph}, nil
}

// SaveModel marshals model and writes it to path, the inverse of LoadModel.
func SaveModel(model *zmf.Model, path string) error {
	data, err := proto.Marshal(model)
	if err != nil {
		return fmt.Errorf("zmf: failed to marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("zmf: failed to write model file %q: %w", path, err)
	}
	return nil
}

func encodeNode(op *ir.Operator) (*zmf.Node, error) {
	node := &zmf.Node{
		Name:   op.Name,
		OpType: string(op.Type),
		Inputs: append([]string(nil), op.Inputs...),
	}

	if len(op.Args) > 0 {
		node.Attributes = make(map[string]*zmf.Attribute, len(op.Args))
		for _, a := range op.Args {
			attr, err := encodeAttribute(a)
			if err != nil {
				return nil, err
			}
			node.Attributes[a.Name] = attr
		}
	}
	return node, nil
}

func encodeAttribute(a ir.Argument) (*zmf.Attribute, error) {
	switch a.Kind {
	case ir.ArgInt:
		return &zmf.Attribute{Value: &zmf.Attribute_I{I: a.I}}, nil
	case ir.ArgFloat:
		return &zmf.Attribute{Value: &zmf.Attribute_F{F: a.F}}, nil
	case ir.ArgString:
		return &zmf.Attribute{Value: &zmf.Attribute_S{S: a.S}}, nil
	case ir.ArgBool:
		return &zmf.Attribute{Value: &zmf.Attribute_B{B: a.B}}, nil
	case ir.ArgInts:
		return &zmf.Attribute{Value: &zmf.Attribute_Ints{Ints: &zmf.Ints{Val: a.Ints}}}, nil
	case ir.ArgFloats:
		return &zmf.Attribute{Value: &zmf.Attribute_Floats{Floats: &zmf.Floats{Val: a.Floats}}}, nil
	default:
		return nil, fmt.Errorf("zmf: argument %q: %w", a.Name, ir.ErrMalformedGraph)
	}
}

// encodeTensor serializes t's float32 payload at the requested output
// precision. A CompileOption.DataType of Float16 quantizes the exported
// constant through github.com/zerfoo/float16 (mirroring
// model/tensor_encoder.go's encodeFloat16: FromFloat32 then the wire's
// little-endian Bits()); any other DataType (including the default,
// Float32) exports the payload unchanged.
func encodeTensor(t *ir.Tensor, dtype ir.DataType) *zmf.Tensor {
	if dtype == ir.Float16 {
		data := make([]byte, len(t.Data)*2)
		for i, v := range t.Data {
			binary.LittleEndian.PutUint16(data[i*2:], float16.FromFloat32(v).Bits())
		}
		return &zmf.Tensor{
			Dtype: zmf.Tensor_FLOAT16,
			Shape: intsToInt64s(t.Dims),
			Data:  data,
		}
	}

	data := make([]byte, len(t.Data)*4)
	for i, v := range t.Data {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return &zmf.Tensor{
		Dtype: zmf.Tensor_FLOAT32,
		Shape: intsToInt64s(t.Dims),
		Data:  data,
	}
}

func intsToInt64s(v []int) []int64 {
	out := make([]int64, len(v))
	for i, d := range v {
		out[i] = int64(d)
	}
	return out
}
