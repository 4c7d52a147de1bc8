// Package zmf adapts between the external ZMF wire format (the protobuf
// record defined by github.com/zerfoo/zmf) and this module's own ir.Graph.
// It is a thin, mechanical decode/encode boundary: it knows how to turn a
// zmf.Model into an ir.Graph plus the ir.CompileOption its declared
// inputs/outputs imply, and back, with no opinion on what any operator
// type means.
package zmf

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/zerfoo/xform/ir"
	"github.com/zerfoo/zmf"
	"google.golang.org/protobuf/proto"
)

// LoadModel reads a .zmf file from path and unmarshals it into a zmf.Model,
// mirroring the read-then-unmarshal shape of the sibling loader this
// package is modeled on.
func LoadModel(path string) (*zmf.Model, error) {
	//nolint:gosec // the model path is operator-supplied and validated by the caller.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("zmf: failed to read model file %q: %w", path, err)
	}

	model := &zmf.Model{}
	if err := proto.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("zmf: failed to unmarshal model: %w", err)
	}
	return model, nil
}

// Decode converts a zmf.Model into an ir.Graph and the CompileOption
// implied by its declared graph-level inputs/outputs (device, data type,
// and winograd remain the caller's to set; they are not carried on the
// wire record).
func Decode(model *zmf.Model) (*ir.Graph, *ir.CompileOption, error) {
	if model == nil || model.Graph == nil {
		return nil, nil, fmt.Errorf("zmf: %w", ir.ErrMalformedGraph)
	}

	g := ir.NewGraph()
	for name, t := range model.Graph.Parameters {
		tensor, err := decodeTensor(name, t)
		if err != nil {
			return nil, nil, err
		}
		g.Consts[name] = tensor
	}

	for _, node := range model.Graph.Nodes {
		op, err := decodeNode(node)
		if err != nil {
			return nil, nil, err
		}
		g.InsertOp(op)
	}

	opt := &ir.CompileOption{DataType: ir.Float32}
	for _, in := range model.Graph.Inputs {
		if _, isParam := model.Graph.Parameters[in.Name]; isParam {
			continue
		}
		opt.Inputs = append(opt.Inputs, ir.InputSpec{
			Name:  in.Name,
			Shape: int64sToInts(in.Shape),
		})
	}
	for _, out := range model.Graph.Outputs {
		opt.Outputs = append(opt.Outputs, out.Name)
	}

	return g, opt, nil
}

func decodeNode(node *zmf.Node) (*ir.Operator, error) {
	op := &ir.Operator{
		Name:    node.Name,
		Type:    ir.OpType(node.OpType),
		Inputs:  append([]string(nil), node.Inputs...),
		Outputs: []string{node.Name},
	}

	for name, attr := range node.Attributes {
		arg, err := decodeAttribute(name, attr)
		if err != nil {
			return nil, err
		}
		op.Args = append(op.Args, arg)
	}
	return op, nil
}

func decodeAttribute(name string, attr *zmf.Attribute) (ir.Argument, error) {
	switch v := attr.Value.(type) {
	case *zmf.Attribute_F:
		return ir.FloatArgument(name, v.F), nil
	case *zmf.Attribute_I:
		return ir.IntArgument(name, v.I), nil
	case *zmf.Attribute_S:
		return ir.StringArgument(name, v.S), nil
	case *zmf.Attribute_B:
		return ir.BoolArgument(name, v.B), nil
	case *zmf.Attribute_Ints:
		return ir.IntsArgument(name, append([]int64(nil), v.Ints.Val...)), nil
	case *zmf.Attribute_Floats:
		return ir.FloatsArgument(name, append([]float32(nil), v.Floats.Val...)), nil
	default:
		return ir.Argument{}, fmt.Errorf("zmf: attribute %q: %w", name, ir.ErrMalformedGraph)
	}
}

// decodeTensor decodes a wire tensor's raw byte payload into the flat
// float32 buffer ir.Tensor carries. Only FLOAT32-encoded constants are
// supported: the transform pipeline's arithmetic (scale folding, filter
// permutation) is defined over float32 throughout, matching how every
// pass in this module reads and writes ir.Tensor.Data.
func decodeTensor(name string, t *zmf.Tensor) (*ir.Tensor, error) {
	if t.Dtype != zmf.Tensor_FLOAT32 {
		return nil, fmt.Errorf("zmf: constant %q: unsupported source dtype %s: %w", name, t.Dtype, ir.ErrUnsupportedFilterFormat)
	}
	if len(t.Data)%4 != 0 {
		return nil, fmt.Errorf("zmf: constant %q: float32 payload length %d is not a multiple of 4", name, len(t.Data))
	}

	dims := int64sToInts(t.Shape)
	data := make([]float32, len(t.Data)/4)
	for i := range data {
		bits := binary.LittleEndian.Uint32(t.Data[i*4 : i*4+4])
		data[i] = math.Float32frombits(bits)
	}

	return &ir.Tensor{Name: name, Dims: dims, Data: data, DType: ir.Float32}, nil
}

func int64sToInts(v []int64) []int {
	out := make([]int, len(v))
	for i, d := range v {
		out[i] = int(d)
	}
	return out
}
