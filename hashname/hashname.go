// Package hashname computes the name hashes used as archive keys.
//
// Names are never stored alongside their records in the data file; every
// record is addressed by a 32-bit hash of its name, type, and subtype
// strings, with the name table acting as the reverse lookup. Hash
// computed the exact way every archive on disk computes it: an IEEE
// CRC-32 checksum, reinterpreted bit-for-bit as a signed 32-bit integer.
// Any other hash function, including a faster non-cryptographic one, would
// silently desynchronize this implementation's hashes from existing
// archives' name tables, so this one function is grounded on the standard
// library rather than a third-party hash (see DESIGN.md).
package hashname

import "hash/crc32"

// Hash returns the IEEE CRC-32 checksum of name, reinterpreted as a signed
// 32-bit integer. This is the archive's sole addressing key: byte-identical
// names always hash equal, and distinct names can collide on the same hash.
func Hash(name string) int32 {
	return int32(crc32.ChecksumIEEE([]byte(name)))
}
