// Package variant implements the structured-variant reflection tree used to
// expose any asset's fields to an editor without that editor needing a
// compiled-in type for every asset format.
//
// A Variant is a closed set of shapes: integer (with a sized subtype),
// float, 2D/3D vector, 2D/3D transform, colour, hash reference, array,
// struct, optional, and tagged choice, deep enough to describe every asset
// codec in this module. Each asset type implements Structure()/Destructure()
// to bridge between its native Go struct and this generic tree, the way the
// source this is modelled on implements ChumStruct::structure/destructure.
package variant

// Kind discriminates which shape a Variant holds.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindVec2
	KindVec3
	KindTransform2D
	KindTransform3D
	KindColor
	KindReference
	KindArray
	KindStruct
	KindOptional
	// KindChoice is a tagged union: exactly one of a known set of named
	// alternatives is active at a time, selected by an integer tag. This
	// shape has no direct counterpart in Variant's grounding source (which
	// models tagged unions only at the Go-struct level, via a macro that
	// expands to one native Rust enum per union); it's added here so the
	// reflection tree itself can describe a node's NodeData union instead
	// of requiring bespoke per-union editor code.
	KindChoice
)

// IntKind selects the sized integer subtype an Integer variant holds.
type IntKind int

const (
	IntI8 IntKind = iota
	IntU8
	IntI16
	IntU16
	IntI32
	IntU32
	// IntCustom uses IntInfo.Min/Max as an explicit inclusive range.
	IntCustom
	// IntEnum treats the integer as a 0-based index into IntInfo.Names.
	IntEnum
	// IntFlags treats the integer as a bitmask over IntInfo.Names.
	IntFlags
)

// IntInfo describes the range or symbolic names of an Integer variant.
type IntInfo struct {
	Kind  IntKind
	Min   int64 // only meaningful when Kind == IntCustom
	Max   int64 // only meaningful when Kind == IntCustom
	Names []string
}

// Range returns the inclusive range of values this integer subtype allows.
func (info IntInfo) Range() (int64, int64) {
	switch info.Kind {
	case IntI8:
		return -128, 127
	case IntU8:
		return 0, 255
	case IntI16:
		return -32768, 32767
	case IntU16:
		return 0, 65535
	case IntI32:
		return -2147483648, 2147483647
	case IntU32:
		return 0, 4294967295
	case IntCustom:
		return info.Min, info.Max
	case IntEnum:
		return 0, int64(len(info.Names)) - 1
	case IntFlags:
		return 0, (1 << uint(len(info.Names))) - 1
	default:
		return 0, 0
	}
}

// ColorInfo records whether a Color variant's alpha channel is meaningful.
type ColorInfo struct {
	HasAlpha bool
}

// ArrayData holds an Array variant's elements, a generator for the element a
// resize operation should insert, and whether the editor may resize it at
// all (some arrays are fixed-length binary fields and must stay that way).
type ArrayData struct {
	Items      []*Variant
	DefaultGen func() *Variant
	CanResize  bool
}

// OptionalData holds an Optional variant's current value (nil if absent)
// and a generator for the value an editor should install if it enables the
// field.
type OptionalData struct {
	Value      *Variant
	DefaultGen func() *Variant
}

// ChoiceData holds a tagged choice's current alternative and the full set
// of alternatives it could switch to.
type ChoiceData struct {
	Tag          int32
	Value        *Variant
	Alternatives map[int32]ChoiceAlternative
}

// ChoiceAlternative names one branch of a tagged choice and generates a
// fresh default value for it.
type ChoiceAlternative struct {
	Name       string
	DefaultGen func() *Variant
}

// Variant is a single node of the structured reflection tree.
type Variant struct {
	Kind Kind

	Integer int64
	IntInfo IntInfo

	Float float32

	Vec2 Vec2Value
	Vec3 Vec3Value

	Transform2D Transform2DValue
	Transform3D Transform3DValue

	Color     ColorValue
	ColorInfo ColorInfo

	ReferenceHash int32
	ReferenceType string // empty if this reference has no target-type hint

	Array *ArrayData

	Struct []StructField

	Optional *OptionalData

	Choice *ChoiceData
}

// StructField is one named field of a Struct variant, in declaration order.
type StructField struct {
	Name  string
	Value *Variant
}

// The Vec2Value/Vec3Value/Transform*Value/ColorValue indirection lets this
// package stay independent of vecmath's concrete types at the field-
// declaration site; they are plain float32 arrays, not vecmath types, built
// by the New* helpers below and read by the Get* accessors in path.go.
type Vec2Value = [2]float32
type Vec3Value = [3]float32
type Transform2DValue = [9]float32
type Transform3DValue = [16]float32
type ColorValue = [4]float32

// NewInteger returns an Integer variant.
func NewInteger(value int64, info IntInfo) *Variant {
	return &Variant{Kind: KindInteger, Integer: value, IntInfo: info}
}

// NewFloat returns a Float variant.
func NewFloat(value float32) *Variant {
	return &Variant{Kind: KindFloat, Float: value}
}

// NewVec2 returns a Vec2 variant.
func NewVec2(x, y float32) *Variant {
	return &Variant{Kind: KindVec2, Vec2: Vec2Value{x, y}}
}

// NewVec3 returns a Vec3 variant.
func NewVec3(x, y, z float32) *Variant {
	return &Variant{Kind: KindVec3, Vec3: Vec3Value{x, y, z}}
}

// NewTransform2D returns a Transform2D variant from a row-major 3x3 matrix.
func NewTransform2D(m [9]float32) *Variant {
	return &Variant{Kind: KindTransform2D, Transform2D: m}
}

// NewTransform3D returns a Transform3D variant from a row-major 4x4 matrix.
func NewTransform3D(m [16]float32) *Variant {
	return &Variant{Kind: KindTransform3D, Transform3D: m}
}

// NewColor returns a Color variant.
func NewColor(r, g, b, a float32, info ColorInfo) *Variant {
	return &Variant{Kind: KindColor, Color: ColorValue{r, g, b, a}, ColorInfo: info}
}

// NewReference returns a Reference variant. targetType may be empty if the
// hash's expected asset type isn't known statically.
func NewReference(hash int32, targetType string) *Variant {
	return &Variant{Kind: KindReference, ReferenceHash: hash, ReferenceType: targetType}
}

// NewArray returns an Array variant.
func NewArray(items []*Variant, defaultGen func() *Variant, canResize bool) *Variant {
	return &Variant{Kind: KindArray, Array: &ArrayData{Items: items, DefaultGen: defaultGen, CanResize: canResize}}
}

// NewStruct returns a Struct variant with fields in declaration order.
func NewStruct(fields []StructField) *Variant {
	return &Variant{Kind: KindStruct, Struct: fields}
}

// NewOptional returns an Optional variant. value is nil if the field is
// currently absent.
func NewOptional(value *Variant, defaultGen func() *Variant) *Variant {
	return &Variant{Kind: KindOptional, Optional: &OptionalData{Value: value, DefaultGen: defaultGen}}
}

// NewChoice returns a Choice variant selecting tag out of alternatives.
func NewChoice(tag int32, value *Variant, alternatives map[int32]ChoiceAlternative) *Variant {
	return &Variant{Kind: KindChoice, Choice: &ChoiceData{Tag: tag, Value: value, Alternatives: alternatives}}
}
