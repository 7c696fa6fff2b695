package variant

// PathElement is one step of a path into a Variant tree: either an array
// index or a struct member name.
type PathElement struct {
	member  string
	index   int
	isIndex bool
}

// Index returns a path element selecting an array element by position.
func Index(i int) PathElement {
	return PathElement{index: i, isIndex: true}
}

// Member returns a path element selecting a struct field by name.
func Member(name string) PathElement {
	return PathElement{member: name}
}

// Get walks path from v, returning the element and true, or nil and false if
// any step doesn't apply (wrong shape, missing index, missing member).
func (v *Variant) Get(path ...PathElement) (*Variant, bool) {
	cur := v
	for _, step := range path {
		var next *Variant
		switch {
		case step.isIndex && cur.Kind == KindArray:
			if step.index < 0 || step.index >= len(cur.Array.Items) {
				return nil, false
			}
			next = cur.Array.Items[step.index]
		case !step.isIndex && cur.Kind == KindStruct:
			found := false
			for _, f := range cur.Struct {
				if f.Name == step.member {
					next = f.Value
					found = true
					break
				}
			}
			if !found {
				return nil, false
			}
		default:
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (v *Variant) GetInteger() (int64, bool) {
	if v.Kind != KindInteger {
		return 0, false
	}
	return v.Integer, true
}

func (v *Variant) GetFloat() (float32, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.Float, true
}

func (v *Variant) GetVec2() (Vec2Value, bool) {
	if v.Kind != KindVec2 {
		return Vec2Value{}, false
	}
	return v.Vec2, true
}

func (v *Variant) GetVec3() (Vec3Value, bool) {
	if v.Kind != KindVec3 {
		return Vec3Value{}, false
	}
	return v.Vec3, true
}

func (v *Variant) GetTransform2D() (Transform2DValue, bool) {
	if v.Kind != KindTransform2D {
		return Transform2DValue{}, false
	}
	return v.Transform2D, true
}

func (v *Variant) GetTransform3D() (Transform3DValue, bool) {
	if v.Kind != KindTransform3D {
		return Transform3DValue{}, false
	}
	return v.Transform3D, true
}

func (v *Variant) GetColor() (ColorValue, ColorInfo, bool) {
	if v.Kind != KindColor {
		return ColorValue{}, ColorInfo{}, false
	}
	return v.Color, v.ColorInfo, true
}

func (v *Variant) GetReference() (int32, string, bool) {
	if v.Kind != KindReference {
		return 0, "", false
	}
	return v.ReferenceHash, v.ReferenceType, true
}

func (v *Variant) GetArray() (*ArrayData, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.Array, true
}

func (v *Variant) GetStruct() ([]StructField, bool) {
	if v.Kind != KindStruct {
		return nil, false
	}
	return v.Struct, true
}

// GetStructItem finds a named field within a Struct variant.
func (v *Variant) GetStructItem(name string) (*Variant, bool) {
	if v.Kind != KindStruct {
		return nil, false
	}
	for _, f := range v.Struct {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (v *Variant) GetOptional() (*OptionalData, bool) {
	if v.Kind != KindOptional {
		return nil, false
	}
	return v.Optional, true
}

func (v *Variant) GetChoice() (*ChoiceData, bool) {
	if v.Kind != KindChoice {
		return nil, false
	}
	return v.Choice, true
}
