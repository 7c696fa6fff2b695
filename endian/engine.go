// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface,
// then layers a stream-oriented Codec on top of it so asset readers never have
// to branch on platform.
//
// # Basic usage
//
// GameCube archives are big-endian, PS2 archives are little-endian:
//
//	gc := endian.NewCodec(endian.GetBigEndianEngine())
//	ps2 := endian.NewCodec(endian.GetLittleEndianEngine())
//
// # Thread safety
//
// EndianEngine values are immutable and stateless and safe for concurrent use.
// A Codec holds only its engine and keeps no other state; the io.Reader or
// io.Writer passed to each of its methods is used without locking.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine orders bytes the same way the host does.
func CompareNativeEndian(engine EndianEngine) bool {
	return IsBigEndian(engine) == IsNativeBigEndian()
}

// GetLittleEndianEngine returns the little-endian engine, used by PS2 archives.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, used by GameCube archives.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
