// Package node decodes the Node asset: the scene-graph node that anchors a
// transform and an attached typed payload (the NodeDataUnion tagged
// choice). This is the canonical user of variant.KindChoice: the payload's
// tag selects which nested struct shape follows it on the wire, exactly
// the pattern variant.ChoiceData models for the reflective layer.
package node

import (
	"io"

	"github.com/brinepack/totemkit/asset/material"
	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// Node data payload tags. A node with no attached payload uses TagEmpty.
const (
	TagEmpty     int32 = 0
	TagRotshape  int32 = 733875652
	TagMesh      int32 = -1724712303
	TagSkin      int32 = 1985457034
	TagSurface   int32 = 413080818
	TagLod       int32 = -141015160
	TagParticles int32 = -241612565
)

// Node-skin extra-data payload tags.
const (
	ExtraTagEmpty      int32 = 0
	ExtraTagUserDefine int32 = -1879206489
)

// Node is a scene-graph node: a parent reference, a typed attached payload,
// a handful of sibling resource references, and the transform that places
// it in the world.
type Node struct {
	ParentID               int32
	UnkIDs                 [3]int32
	ResourceID             int32
	Data                   NodeData
	LightID                int32
	HFogID                 int32
	UserdefineID           int32
	FloatV1                [9]float32
	FloatV2                [9]float32
	LocalTransform         vecmath.Mat4x4
	LocalTranslation       vecmath.Vector3
	LocalRotation          vecmath.Quaternion
	LocalScale             vecmath.Vector3
	Unk1                   [2]float32
	Unk2                   [8]uint32
	Unk3                   [4]float32
	Unk4                   [2]uint16
	GlobalTransform        vecmath.Mat4x4
	GlobalTransformInverse vecmath.Mat4x4
}

// NodeData is the decoded payload carried by NodeDataUnion: Tag selects
// which of the typed fields below is meaningful.
type NodeData struct {
	Tag       int32
	Lod       *DataLod
	Skin      *DataSkin
	Surface   *DataSurface
	Rotshape  *DataRotshape
	Mesh      *DataMesh
	Particles *DataParticles
}

// DataLod is the NodeDataLod payload.
type DataLod struct {
	PathID    int32
	SubtypeID int32
	Unk1      [5]float32
	Data      []NodeData
	Unk2      [100]byte
	NodeID    int32
	Light1ID  int32
	Light2ID  int32
	Nodes     []int32
	Unk3      []uint32
}

// DataSurface is the NodeDataSurface payload.
type DataSurface struct {
	DataID    int32
	SubtypeID int32
	Data      [5]float32
	Unk1      []SurfaceUnk
	Unk2      uint32
	Unk3      uint32
}

// SurfaceUnk is an opaque 104-byte record inside DataSurface.Unk1.
type SurfaceUnk struct {
	Data [104]byte
}

// DataRotshape is the NodeDataRotshape payload.
type DataRotshape struct {
	DataID    int32
	SubtypeID int32
	Unk1      [6]uint32
	Unk2      uint16
	Junk      [28]byte
}

// DataMesh is the NodeDataMesh payload.
type DataMesh struct {
	DataID    int32
	SubtypeID int32
	Data      [5]float32
}

// DataParticles is the NodeDataParticles payload.
type DataParticles struct {
	DataID    int32
	SubtypeID int32
	Unk1      [5]float32
	Unk2      uint16
}

// DataSkin is the NodeDataSkin payload.
type DataSkin struct {
	PathID    int32
	SubtypeID int32
	Unk1      [5]float32
	Unk2      []SkinUnk2
	Unk3ID    int32
	Materials []SkinMaterial
	Unk4      []SkinUnk
	Unk5      []SkinUnk
	Unk6      []SkinUnk
	Unk7      []SkinUnk7
}

// SkinExtraData is the NodeSkinUnk2ExtraDataUnion payload.
type SkinExtraData struct {
	Tag        int32
	Type1      int32
	Type2      int32
	RawPayload []byte
}

// SkinUnk2 is one NodeSkinUnk2 entry.
type SkinUnk2 struct {
	UnkIDs           [5]int32
	ExtraData        SkinExtraData
	LocalTranslation vecmath.Vector3
	LocalRotation    vecmath.Quaternion
	LocalScale       vecmath.Vector3
	FloatV1          [9]float32
	FloatV2          [9]float32
	TX1              vecmath.Mat4x4
	TX2              vecmath.Mat4x4
}

// SkinMaterial binds a material reference to a NodeDataSkin.
type SkinMaterial struct {
	FiletypeID int32
	FilenameID int32
	SubtypeID  int32
	Material   material.Material
}

// SkinUnk is a small weighted reference pair used in Unk4/Unk5/Unk6.
type SkinUnk struct {
	Unk1   [4]float32
	Unk2ID int32
	Unk3ID int32
}

// SkinUnk7 pairs a nested NodeData with a variable-length list of ids. The
// two are read in separate passes on the wire: every entry's Data first,
// then every entry's IDs, matching the source format's own two-pass layout.
type SkinUnk7 struct {
	Data NodeData
	IDs  []int32
}

func readI32Array3(r io.Reader, c *endian.Codec) ([3]int32, error) {
	var out [3]int32
	err := c.ReadI32Into(r, out[:])
	return out, err
}

// ReadFrom decodes a Node.
func ReadFrom(r io.Reader, c *endian.Codec) (Node, error) {
	var n Node
	var err error
	if n.ParentID, err = c.ReadI32(r); err != nil {
		return Node{}, err
	}
	if n.UnkIDs, err = readI32Array3(r, c); err != nil {
		return Node{}, err
	}
	if n.ResourceID, err = c.ReadI32(r); err != nil {
		return Node{}, err
	}
	if n.Data, err = readNodeData(r, c); err != nil {
		return Node{}, err
	}
	if n.LightID, err = c.ReadI32(r); err != nil {
		return Node{}, err
	}
	if n.HFogID, err = c.ReadI32(r); err != nil {
		return Node{}, err
	}
	if n.UserdefineID, err = c.ReadI32(r); err != nil {
		return Node{}, err
	}
	if err = c.ReadF32Into(r, n.FloatV1[:]); err != nil {
		return Node{}, err
	}
	if err = c.ReadF32Into(r, n.FloatV2[:]); err != nil {
		return Node{}, err
	}
	if n.LocalTransform, err = vecmath.ReadMat4x4(r, c); err != nil {
		return Node{}, err
	}
	if n.LocalTranslation, err = vecmath.ReadVector3(r, c); err != nil {
		return Node{}, err
	}
	if err = c.SkipNBytes(r, 4); err != nil {
		return Node{}, err
	}
	if n.LocalRotation, err = vecmath.ReadQuaternion(r, c); err != nil {
		return Node{}, err
	}
	if n.LocalScale, err = vecmath.ReadVector3(r, c); err != nil {
		return Node{}, err
	}
	if err = c.SkipNBytes(r, 4); err != nil {
		return Node{}, err
	}
	if err = c.ReadF32Into(r, n.Unk1[:]); err != nil {
		return Node{}, err
	}
	if err = c.ReadU32Into(r, n.Unk2[:]); err != nil {
		return Node{}, err
	}
	if err = c.ReadF32Into(r, n.Unk3[:]); err != nil {
		return Node{}, err
	}
	if err = c.ReadU16Into(r, n.Unk4[:]); err != nil {
		return Node{}, err
	}
	if n.GlobalTransform, err = vecmath.ReadMat4x4(r, c); err != nil {
		return Node{}, err
	}
	if n.GlobalTransformInverse, err = vecmath.ReadMat4x4(r, c); err != nil {
		return Node{}, err
	}
	return n, nil
}

// WriteTo encodes a Node.
func (n Node) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := c.WriteI32(w, n.ParentID); err != nil {
		return err
	}
	for _, id := range n.UnkIDs {
		if err := c.WriteI32(w, id); err != nil {
			return err
		}
	}
	if err := c.WriteI32(w, n.ResourceID); err != nil {
		return err
	}
	if err := writeNodeData(w, c, n.Data); err != nil {
		return err
	}
	if err := c.WriteI32(w, n.LightID); err != nil {
		return err
	}
	if err := c.WriteI32(w, n.HFogID); err != nil {
		return err
	}
	if err := c.WriteI32(w, n.UserdefineID); err != nil {
		return err
	}
	for _, f := range n.FloatV1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	for _, f := range n.FloatV2 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := vecmath.WriteMat4x4(w, c, n.LocalTransform); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, n.LocalTranslation); err != nil {
		return err
	}
	var junk4 [4]byte
	if err := c.WriteBytes(w, junk4[:]); err != nil {
		return err
	}
	if err := vecmath.WriteQuaternion(w, c, n.LocalRotation); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, n.LocalScale); err != nil {
		return err
	}
	if err := c.WriteBytes(w, junk4[:]); err != nil {
		return err
	}
	for _, f := range n.Unk1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	for _, v := range n.Unk2 {
		if err := c.WriteU32(w, v); err != nil {
			return err
		}
	}
	for _, f := range n.Unk3 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	for _, v := range n.Unk4 {
		if err := c.WriteU16(w, v); err != nil {
			return err
		}
	}
	if err := vecmath.WriteMat4x4(w, c, n.GlobalTransform); err != nil {
		return err
	}
	return vecmath.WriteMat4x4(w, c, n.GlobalTransformInverse)
}

func readI32List(r io.Reader, c *endian.Codec) ([]int32, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		if out[i], err = c.ReadI32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeI32List(w io.Writer, c *endian.Codec, list []int32) error {
	if err := c.WriteU32(w, uint32(len(list))); err != nil {
		return err
	}
	for _, v := range list {
		if err := c.WriteI32(w, v); err != nil {
			return err
		}
	}
	return nil
}

func readU32List(r io.Reader, c *endian.Codec) ([]uint32, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	for i := range out {
		if out[i], err = c.ReadU32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeU32List(w io.Writer, c *endian.Codec, list []uint32) error {
	if err := c.WriteU32(w, uint32(len(list))); err != nil {
		return err
	}
	for _, v := range list {
		if err := c.WriteU32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// readNodeData decodes a tagged NodeDataUnion payload.
func readNodeData(r io.Reader, c *endian.Codec) (NodeData, error) {
	tag, err := c.ReadI32(r)
	if err != nil {
		return NodeData{}, err
	}
	data := NodeData{Tag: tag}
	switch tag {
	case TagEmpty:
		return data, nil
	case TagLod:
		lod, err := readDataLod(r, c)
		if err != nil {
			return NodeData{}, err
		}
		data.Lod = &lod
	case TagSkin:
		skin, err := readDataSkin(r, c)
		if err != nil {
			return NodeData{}, err
		}
		data.Skin = &skin
	case TagSurface:
		surf, err := readDataSurface(r, c)
		if err != nil {
			return NodeData{}, err
		}
		data.Surface = &surf
	case TagRotshape:
		rs, err := readDataRotshape(r, c)
		if err != nil {
			return NodeData{}, err
		}
		data.Rotshape = &rs
	case TagMesh:
		m, err := readDataMesh(r, c)
		if err != nil {
			return NodeData{}, err
		}
		data.Mesh = &m
	case TagParticles:
		p, err := readDataParticles(r, c)
		if err != nil {
			return NodeData{}, err
		}
		data.Particles = &p
	default:
		return NodeData{}, chumerr.New(chumerr.KindInvalidEnum, "NodeDataUnion", "tag", nil)
	}
	return data, nil
}

func writeNodeData(w io.Writer, c *endian.Codec, d NodeData) error {
	if err := c.WriteI32(w, d.Tag); err != nil {
		return err
	}
	switch d.Tag {
	case TagEmpty:
		return nil
	case TagLod:
		return writeDataLod(w, c, *d.Lod)
	case TagSkin:
		return writeDataSkin(w, c, *d.Skin)
	case TagSurface:
		return writeDataSurface(w, c, *d.Surface)
	case TagRotshape:
		return writeDataRotshape(w, c, *d.Rotshape)
	case TagMesh:
		return writeDataMesh(w, c, *d.Mesh)
	case TagParticles:
		return writeDataParticles(w, c, *d.Particles)
	default:
		return chumerr.New(chumerr.KindInvalidEnum, "NodeDataUnion", "tag", nil)
	}
}

func readDataLod(r io.Reader, c *endian.Codec) (DataLod, error) {
	var d DataLod
	var err error
	if d.PathID, err = c.ReadI32(r); err != nil {
		return DataLod{}, err
	}
	if d.SubtypeID, err = c.ReadI32(r); err != nil {
		return DataLod{}, err
	}
	if err = c.ReadF32Into(r, d.Unk1[:]); err != nil {
		return DataLod{}, err
	}
	count, err := c.ReadU32(r)
	if err != nil {
		return DataLod{}, err
	}
	d.Data = make([]NodeData, count)
	for i := range d.Data {
		if d.Data[i], err = readNodeData(r, c); err != nil {
			return DataLod{}, err
		}
	}
	if err = c.ReadExact(r, d.Unk2[:]); err != nil {
		return DataLod{}, err
	}
	if d.NodeID, err = c.ReadI32(r); err != nil {
		return DataLod{}, err
	}
	if d.Light1ID, err = c.ReadI32(r); err != nil {
		return DataLod{}, err
	}
	if d.Light2ID, err = c.ReadI32(r); err != nil {
		return DataLod{}, err
	}
	if d.Nodes, err = readI32List(r, c); err != nil {
		return DataLod{}, err
	}
	if d.Unk3, err = readU32List(r, c); err != nil {
		return DataLod{}, err
	}
	return d, nil
}

func writeDataLod(w io.Writer, c *endian.Codec, d DataLod) error {
	if err := c.WriteI32(w, d.PathID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.SubtypeID); err != nil {
		return err
	}
	for _, f := range d.Unk1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(d.Data))); err != nil {
		return err
	}
	for _, nd := range d.Data {
		if err := writeNodeData(w, c, nd); err != nil {
			return err
		}
	}
	if err := c.WriteBytes(w, d.Unk2[:]); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.NodeID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.Light1ID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.Light2ID); err != nil {
		return err
	}
	if err := writeI32List(w, c, d.Nodes); err != nil {
		return err
	}
	return writeU32List(w, c, d.Unk3)
}

func readDataSurface(r io.Reader, c *endian.Codec) (DataSurface, error) {
	var d DataSurface
	var err error
	if d.DataID, err = c.ReadI32(r); err != nil {
		return DataSurface{}, err
	}
	if d.SubtypeID, err = c.ReadI32(r); err != nil {
		return DataSurface{}, err
	}
	if err = c.ReadF32Into(r, d.Data[:]); err != nil {
		return DataSurface{}, err
	}
	count, err := c.ReadU32(r)
	if err != nil {
		return DataSurface{}, err
	}
	d.Unk1 = make([]SurfaceUnk, count)
	for i := range d.Unk1 {
		if err = c.ReadExact(r, d.Unk1[i].Data[:]); err != nil {
			return DataSurface{}, err
		}
	}
	if d.Unk2, err = c.ReadU32(r); err != nil {
		return DataSurface{}, err
	}
	if d.Unk3, err = c.ReadU32(r); err != nil {
		return DataSurface{}, err
	}
	return d, nil
}

func writeDataSurface(w io.Writer, c *endian.Codec, d DataSurface) error {
	if err := c.WriteI32(w, d.DataID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.SubtypeID); err != nil {
		return err
	}
	for _, f := range d.Data {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(d.Unk1))); err != nil {
		return err
	}
	for _, u := range d.Unk1 {
		if err := c.WriteBytes(w, u.Data[:]); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, d.Unk2); err != nil {
		return err
	}
	return c.WriteU32(w, d.Unk3)
}

func readDataRotshape(r io.Reader, c *endian.Codec) (DataRotshape, error) {
	var d DataRotshape
	var err error
	if d.DataID, err = c.ReadI32(r); err != nil {
		return DataRotshape{}, err
	}
	if d.SubtypeID, err = c.ReadI32(r); err != nil {
		return DataRotshape{}, err
	}
	if err = c.ReadU32Into(r, d.Unk1[:]); err != nil {
		return DataRotshape{}, err
	}
	if d.Unk2, err = c.ReadU16(r); err != nil {
		return DataRotshape{}, err
	}
	if err = c.ReadExact(r, d.Junk[:]); err != nil {
		return DataRotshape{}, err
	}
	return d, nil
}

func writeDataRotshape(w io.Writer, c *endian.Codec, d DataRotshape) error {
	if err := c.WriteI32(w, d.DataID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.SubtypeID); err != nil {
		return err
	}
	for _, v := range d.Unk1 {
		if err := c.WriteU32(w, v); err != nil {
			return err
		}
	}
	if err := c.WriteU16(w, d.Unk2); err != nil {
		return err
	}
	return c.WriteBytes(w, d.Junk[:])
}

func readDataMesh(r io.Reader, c *endian.Codec) (DataMesh, error) {
	var d DataMesh
	var err error
	if d.DataID, err = c.ReadI32(r); err != nil {
		return DataMesh{}, err
	}
	if d.SubtypeID, err = c.ReadI32(r); err != nil {
		return DataMesh{}, err
	}
	if err = c.ReadF32Into(r, d.Data[:]); err != nil {
		return DataMesh{}, err
	}
	return d, nil
}

func writeDataMesh(w io.Writer, c *endian.Codec, d DataMesh) error {
	if err := c.WriteI32(w, d.DataID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.SubtypeID); err != nil {
		return err
	}
	for _, f := range d.Data {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	return nil
}

func readDataParticles(r io.Reader, c *endian.Codec) (DataParticles, error) {
	var d DataParticles
	var err error
	if d.DataID, err = c.ReadI32(r); err != nil {
		return DataParticles{}, err
	}
	if d.SubtypeID, err = c.ReadI32(r); err != nil {
		return DataParticles{}, err
	}
	if err = c.ReadF32Into(r, d.Unk1[:]); err != nil {
		return DataParticles{}, err
	}
	if d.Unk2, err = c.ReadU16(r); err != nil {
		return DataParticles{}, err
	}
	return d, nil
}

func writeDataParticles(w io.Writer, c *endian.Codec, d DataParticles) error {
	if err := c.WriteI32(w, d.DataID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.SubtypeID); err != nil {
		return err
	}
	for _, f := range d.Unk1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	return c.WriteU16(w, d.Unk2)
}

func readSkinExtraData(r io.Reader, c *endian.Codec) (SkinExtraData, error) {
	tag, err := c.ReadI32(r)
	if err != nil {
		return SkinExtraData{}, err
	}
	d := SkinExtraData{Tag: tag}
	switch tag {
	case ExtraTagEmpty:
		return d, nil
	case ExtraTagUserDefine:
		if d.Type1, err = c.ReadI32(r); err != nil {
			return SkinExtraData{}, err
		}
		if d.Type2, err = c.ReadI32(r); err != nil {
			return SkinExtraData{}, err
		}
		count, err := c.ReadU32(r)
		if err != nil {
			return SkinExtraData{}, err
		}
		d.RawPayload = make([]byte, count)
		if err = c.ReadExact(r, d.RawPayload); err != nil {
			return SkinExtraData{}, err
		}
		return d, nil
	default:
		return SkinExtraData{}, chumerr.New(chumerr.KindInvalidEnum, "NodeSkinUnk2ExtraDataUnion", "tag", nil)
	}
}

func writeSkinExtraData(w io.Writer, c *endian.Codec, d SkinExtraData) error {
	if err := c.WriteI32(w, d.Tag); err != nil {
		return err
	}
	switch d.Tag {
	case ExtraTagEmpty:
		return nil
	case ExtraTagUserDefine:
		if err := c.WriteI32(w, d.Type1); err != nil {
			return err
		}
		if err := c.WriteI32(w, d.Type2); err != nil {
			return err
		}
		if err := c.WriteU32(w, uint32(len(d.RawPayload))); err != nil {
			return err
		}
		return c.WriteBytes(w, d.RawPayload)
	default:
		return chumerr.New(chumerr.KindInvalidEnum, "NodeSkinUnk2ExtraDataUnion", "tag", nil)
	}
}

func readSkinUnk2(r io.Reader, c *endian.Codec) (SkinUnk2, error) {
	var s SkinUnk2
	var err error
	if err = c.ReadI32Into(r, s.UnkIDs[:]); err != nil {
		return SkinUnk2{}, err
	}
	if s.ExtraData, err = readSkinExtraData(r, c); err != nil {
		return SkinUnk2{}, err
	}
	if s.LocalTranslation, err = vecmath.ReadVector3(r, c); err != nil {
		return SkinUnk2{}, err
	}
	if err = c.SkipNBytes(r, 4); err != nil {
		return SkinUnk2{}, err
	}
	if s.LocalRotation, err = vecmath.ReadQuaternion(r, c); err != nil {
		return SkinUnk2{}, err
	}
	if s.LocalScale, err = vecmath.ReadVector3(r, c); err != nil {
		return SkinUnk2{}, err
	}
	if err = c.ReadF32Into(r, s.FloatV1[:]); err != nil {
		return SkinUnk2{}, err
	}
	if err = c.ReadF32Into(r, s.FloatV2[:]); err != nil {
		return SkinUnk2{}, err
	}
	if s.TX1, err = vecmath.ReadMat4x4(r, c); err != nil {
		return SkinUnk2{}, err
	}
	if s.TX2, err = vecmath.ReadMat4x4(r, c); err != nil {
		return SkinUnk2{}, err
	}
	return s, nil
}

func writeSkinUnk2(w io.Writer, c *endian.Codec, s SkinUnk2) error {
	for _, id := range s.UnkIDs {
		if err := c.WriteI32(w, id); err != nil {
			return err
		}
	}
	if err := writeSkinExtraData(w, c, s.ExtraData); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, s.LocalTranslation); err != nil {
		return err
	}
	var junk4 [4]byte
	if err := c.WriteBytes(w, junk4[:]); err != nil {
		return err
	}
	if err := vecmath.WriteQuaternion(w, c, s.LocalRotation); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, s.LocalScale); err != nil {
		return err
	}
	for _, f := range s.FloatV1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	for _, f := range s.FloatV2 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := vecmath.WriteMat4x4(w, c, s.TX1); err != nil {
		return err
	}
	return vecmath.WriteMat4x4(w, c, s.TX2)
}

func readSkinMaterial(r io.Reader, c *endian.Codec) (SkinMaterial, error) {
	var s SkinMaterial
	var err error
	if s.FiletypeID, err = c.ReadI32(r); err != nil {
		return SkinMaterial{}, err
	}
	if s.FilenameID, err = c.ReadI32(r); err != nil {
		return SkinMaterial{}, err
	}
	if s.SubtypeID, err = c.ReadI32(r); err != nil {
		return SkinMaterial{}, err
	}
	m, err := material.ReadFrom(r, c)
	if err != nil {
		return SkinMaterial{}, err
	}
	s.Material = m
	return s, nil
}

func writeSkinMaterial(w io.Writer, c *endian.Codec, s SkinMaterial) error {
	if err := c.WriteI32(w, s.FiletypeID); err != nil {
		return err
	}
	if err := c.WriteI32(w, s.FilenameID); err != nil {
		return err
	}
	if err := c.WriteI32(w, s.SubtypeID); err != nil {
		return err
	}
	var unknownHeader [101]byte
	return s.Material.WriteTo(w, c, unknownHeader)
}

func readSkinUnk(r io.Reader, c *endian.Codec) (SkinUnk, error) {
	var s SkinUnk
	var err error
	if err = c.ReadF32Into(r, s.Unk1[:]); err != nil {
		return SkinUnk{}, err
	}
	if s.Unk2ID, err = c.ReadI32(r); err != nil {
		return SkinUnk{}, err
	}
	if s.Unk3ID, err = c.ReadI32(r); err != nil {
		return SkinUnk{}, err
	}
	return s, nil
}

func writeSkinUnk(w io.Writer, c *endian.Codec, s SkinUnk) error {
	for _, f := range s.Unk1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := c.WriteI32(w, s.Unk2ID); err != nil {
		return err
	}
	return c.WriteI32(w, s.Unk3ID)
}

func readSkinUnkList(r io.Reader, c *endian.Codec) ([]SkinUnk, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]SkinUnk, count)
	for i := range out {
		if out[i], err = readSkinUnk(r, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeSkinUnkList(w io.Writer, c *endian.Codec, list []SkinUnk) error {
	if err := c.WriteU32(w, uint32(len(list))); err != nil {
		return err
	}
	for _, s := range list {
		if err := writeSkinUnk(w, c, s); err != nil {
			return err
		}
	}
	return nil
}

// readDataSkin decodes a NodeDataSkin. Unk7 is read in two passes: every
// entry's nested NodeData first, then every entry's id list, matching the
// two-pass layout the format this is grounded on documents as deliberate.
func readDataSkin(r io.Reader, c *endian.Codec) (DataSkin, error) {
	var d DataSkin
	var err error
	if d.PathID, err = c.ReadI32(r); err != nil {
		return DataSkin{}, err
	}
	if d.SubtypeID, err = c.ReadI32(r); err != nil {
		return DataSkin{}, err
	}
	if err = c.ReadF32Into(r, d.Unk1[:]); err != nil {
		return DataSkin{}, err
	}
	unk2Count, err := c.ReadU32(r)
	if err != nil {
		return DataSkin{}, err
	}
	d.Unk2 = make([]SkinUnk2, unk2Count)
	for i := range d.Unk2 {
		if d.Unk2[i], err = readSkinUnk2(r, c); err != nil {
			return DataSkin{}, err
		}
	}
	if d.Unk3ID, err = c.ReadI32(r); err != nil {
		return DataSkin{}, err
	}
	matCount, err := c.ReadU32(r)
	if err != nil {
		return DataSkin{}, err
	}
	d.Materials = make([]SkinMaterial, matCount)
	for i := range d.Materials {
		if d.Materials[i], err = readSkinMaterial(r, c); err != nil {
			return DataSkin{}, err
		}
	}
	if d.Unk4, err = readSkinUnkList(r, c); err != nil {
		return DataSkin{}, err
	}
	if d.Unk5, err = readSkinUnkList(r, c); err != nil {
		return DataSkin{}, err
	}
	if d.Unk6, err = readSkinUnkList(r, c); err != nil {
		return DataSkin{}, err
	}
	unk7Count, err := c.ReadU32(r)
	if err != nil {
		return DataSkin{}, err
	}
	d.Unk7 = make([]SkinUnk7, unk7Count)
	for i := range d.Unk7 {
		if d.Unk7[i].Data, err = readNodeData(r, c); err != nil {
			return DataSkin{}, err
		}
	}
	for i := range d.Unk7 {
		if d.Unk7[i].IDs, err = readI32List(r, c); err != nil {
			return DataSkin{}, err
		}
	}
	return d, nil
}

func writeDataSkin(w io.Writer, c *endian.Codec, d DataSkin) error {
	if err := c.WriteI32(w, d.PathID); err != nil {
		return err
	}
	if err := c.WriteI32(w, d.SubtypeID); err != nil {
		return err
	}
	for _, f := range d.Unk1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(d.Unk2))); err != nil {
		return err
	}
	for _, u := range d.Unk2 {
		if err := writeSkinUnk2(w, c, u); err != nil {
			return err
		}
	}
	if err := c.WriteI32(w, d.Unk3ID); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(d.Materials))); err != nil {
		return err
	}
	for _, m := range d.Materials {
		if err := writeSkinMaterial(w, c, m); err != nil {
			return err
		}
	}
	if err := writeSkinUnkList(w, c, d.Unk4); err != nil {
		return err
	}
	if err := writeSkinUnkList(w, c, d.Unk5); err != nil {
		return err
	}
	if err := writeSkinUnkList(w, c, d.Unk6); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(d.Unk7))); err != nil {
		return err
	}
	for _, u := range d.Unk7 {
		if err := writeNodeData(w, c, u.Data); err != nil {
			return err
		}
	}
	for _, u := range d.Unk7 {
		if err := writeI32List(w, c, u.IDs); err != nil {
			return err
		}
	}
	return nil
}

// Structure exposes Node's parent/resource references and its payload as a
// tagged choice variant, the canonical use of variant.KindChoice.
func (n Node) Structure() *variant.Variant {
	alternatives := map[int32]variant.ChoiceAlternative{
		TagEmpty:     {Name: "Empty"},
		TagLod:       {Name: "NodeDataLod"},
		TagSkin:      {Name: "NodeDataSkin"},
		TagSurface:   {Name: "NodeDataSurface"},
		TagRotshape:  {Name: "NodeDataRotshape"},
		TagMesh:      {Name: "NodeDataMesh"},
		TagParticles: {Name: "NodeDataParticles"},
	}
	var payload *variant.Variant
	switch n.Data.Tag {
	case TagLod:
		payload = variant.NewStruct([]variant.StructField{
			{Name: "node_id", Value: variant.NewReference(n.Data.Lod.NodeID, "NODE")},
			{Name: "light1_id", Value: variant.NewReference(n.Data.Lod.Light1ID, "LIGHT")},
			{Name: "light2_id", Value: variant.NewReference(n.Data.Lod.Light2ID, "LIGHT")},
		})
	case TagMesh:
		payload = variant.NewStruct(nil)
	default:
		payload = variant.NewStruct(nil)
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "parent_id", Value: variant.NewReference(n.ParentID, "NODE")},
		{Name: "resource_id", Value: variant.NewReference(n.ResourceID, "")},
		{Name: "light_id", Value: variant.NewReference(n.LightID, "LIGHT")},
		{Name: "hfog_id", Value: variant.NewReference(n.HFogID, "HFOG")},
		{Name: "userdefine_id", Value: variant.NewReference(n.UserdefineID, "USERDEFINE")},
		{Name: "node_data", Value: variant.NewChoice(n.Data.Tag, payload, alternatives)},
	})
}
