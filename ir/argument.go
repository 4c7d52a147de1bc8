package ir

// ArgKind discriminates which field of an Argument holds its value.
type ArgKind int

// Recognized argument value kinds.
const (
	ArgInt ArgKind = iota
	ArgFloat
	ArgString
	ArgBool
	ArgInts
	ArgFloats
	ArgStrings
)

// Argument is a single typed, named operator attribute. The recognized
// argument names are a closed vocabulary (data_format, padding,
// padding_values, strides, dilations, kernel, axis, paddings, shape,
// global_pooling, element_type, activation_type, activation_max_limit,
// winograd_filter_transformed, T, buffer_type, mode, dims, batch, height,
// width) but Argument itself does not enforce that list; callers look
// arguments up by name through Operator's typed getters.
type Argument struct {
	Name    string
	Kind    ArgKind
	I       int64
	F       float32
	S       string
	B       bool
	Ints    []int64
	Floats  []float32
	Strings []string
}

// IntArgument builds a scalar integer argument.
func IntArgument(name string, v int64) Argument {
	return Argument{Name: name, Kind: ArgInt, I: v}
}

// FloatArgument builds a scalar float argument.
func FloatArgument(name string, v float32) Argument {
	return Argument{Name: name, Kind: ArgFloat, F: v}
}

// StringArgument builds a scalar string argument.
func StringArgument(name string, v string) Argument {
	return Argument{Name: name, Kind: ArgString, S: v}
}

// BoolArgument builds a scalar boolean argument.
func BoolArgument(name string, v bool) Argument {
	return Argument{Name: name, Kind: ArgBool, B: v}
}

// IntsArgument builds an integer-list argument.
func IntsArgument(name string, v []int64) Argument {
	return Argument{Name: name, Kind: ArgInts, Ints: v}
}

// FloatsArgument builds a float-list argument.
func FloatsArgument(name string, v []float32) Argument {
	return Argument{Name: name, Kind: ArgFloats, Floats: v}
}
