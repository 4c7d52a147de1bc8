// Package ir defines the mutable intermediate representation the transform
// pipeline operates on: a graph of operators and constant tensors, the
// compile-time options that parameterize the pipeline, and the index
// structures the coordinator rebuilds between passes.
package ir

// OpType identifies the kind of computation an Operator performs. It is a
// distinct string type rather than a closed enum so that operator kinds
// outside the recognized vocabulary (the front-end importer may emit types
// this engine never rewrites) pass through untouched instead of being
// rejected.
type OpType string

// The recognized operator-type vocabulary (see the glossary).
const (
	OpIdentity                 OpType = "Identity"
	OpInput                    OpType = "Input"
	OpPooling                  OpType = "Pooling"
	OpSoftmax                  OpType = "Softmax"
	OpReshape                  OpType = "Reshape"
	OpEltwise                  OpType = "Eltwise"
	OpConv2D                   OpType = "Conv2D"
	OpDeconv2D                 OpType = "Deconv2D"
	OpDepthwiseConv2d          OpType = "DepthwiseConv2d"
	OpFoldedBatchNorm          OpType = "FoldedBatchNorm"
	OpBiasAdd                  OpType = "BiasAdd"
	OpActivation               OpType = "Activation"
	OpFullyConnected           OpType = "FullyConnected"
	OpMatMul                   OpType = "MatMul"
	OpWinogradTransform        OpType = "WinogradTransform"
	OpWinogradInverseTransform OpType = "WinogradInverseTransform"
	OpTranspose                OpType = "Transpose"
	OpBufferToImage            OpType = "BufferToImage"
	OpImageToBuffer            OpType = "ImageToBuffer"
	OpAdd                      OpType = "Add"
	OpConcat                   OpType = "Concat"
	OpSlice                    OpType = "Slice"
	OpPad                      OpType = "Pad"
)

// DataFormat is the tensor layout a layout-sensitive operator's feature maps
// are arranged in.
type DataFormat int

// Recognized data formats. The zero value means "not tagged".
const (
	DataFormatUnspecified DataFormat = iota
	NHWC
	NCHW
)

func (f DataFormat) String() string {
	switch f {
	case NHWC:
		return "NHWC"
	case NCHW:
		return "NCHW"
	default:
		return "unspecified"
	}
}

// FilterFormat is the layout of a convolution filter constant.
type FilterFormat int

// Recognized filter formats. The zero value means "not set"; a valid graph
// always has one of the three named values once decoded.
const (
	FilterFormatUnspecified FilterFormat = iota
	HWIO
	OIHW
	HWOI
)

func (f FilterFormat) String() string {
	switch f {
	case HWIO:
		return "HWIO"
	case OIHW:
		return "OIHW"
	case HWOI:
		return "HWOI"
	default:
		return "unspecified"
	}
}

// Device is the compilation target.
type Device int

// Recognized devices.
const (
	CPU Device = iota
	GPU
)

func (d Device) String() string {
	if d == GPU {
		return "GPU"
	}
	return "CPU"
}

// DataType tags the element type of a constant tensor or the model-wide
// scalar data_type carried on CompileOption.
type DataType int

// Recognized data types.
const (
	DataTypeUnspecified DataType = iota
	Float32
	Float64
	Float16
	BFloat16
	Int8
	Int32
	Int64
)

// EltwiseType distinguishes the element-wise operation an Eltwise op
// performs; carried as the integer value of the "element_type" argument.
type EltwiseType int64

// Recognized element-wise operation kinds.
const (
	EltwiseUnspecified EltwiseType = iota
	EltwiseSum
	EltwiseProd
)

// PaddingMode is the enum form of a Conv2D/Deconv2D/Pooling "padding"
// argument, used when padding is specified symbolically rather than as
// explicit per-side values.
type PaddingMode int64

// Recognized padding modes.
const (
	PaddingUnspecified PaddingMode = iota
	PaddingValid
	PaddingSame
)

// ActivationType names the nonlinearity an Activation op applies.
type ActivationType string

// Recognized activation kinds. PRELU is the one activation fold_activation
// (see spec §4.3.10) refuses to fuse, since it carries its own learned
// per-channel parameter rather than a pair of scalar constants.
const (
	ActivationRelu   ActivationType = "RELU"
	ActivationRelu6  ActivationType = "RELUX"
	ActivationPrelu  ActivationType = "PRELU"
	ActivationTanh   ActivationType = "TANH"
	ActivationSigmoid ActivationType = "SIGMOID"
)

// ImageBufferKind classifies how a GPU-resident tensor should be laid out
// as an OpenCL-style image rather than a flat buffer. See spec §4.3.14.
type ImageBufferKind int

// Recognized image-buffer kinds.
const (
	ImageBufferUnspecified ImageBufferKind = iota
	Conv2DFilter
	InOutChannel
	ImageArgument
	InOutHeight
	InOutWidth
	WinogradFilter
	DWConv2DFilter
	WeightHeight
	WeightWidth
)
