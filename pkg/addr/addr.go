package addr

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Address is the hex-encoded 32-byte storage slot of a record. Every record in
// the ledger is located by deriving its address from a tag and its key material;
// there is no secondary index.
type Address string

// MaxBump is the starting point of the bump search.
const MaxBump = 255

// Derive maps (tag, parts) to a stable address and bump. The derivation is pure:
// identical inputs always yield the same output. The tag domain-separates entity
// kinds and every part is length-prefixed, so distinct (tag, parts) tuples cannot
// produce the same preimage.
//
// The bump counts down from MaxBump until the digest passes the validity
// predicate. Callers persist the bump alongside the record so the address can be
// re-derived without searching.
func Derive(tag string, parts ...[]byte) (Address, uint8) {
	for bump := MaxBump; bump >= 0; bump-- {
		digest := digest(tag, parts, uint8(bump))
		if valid(digest) {
			return Address(hex.EncodeToString(digest)), uint8(bump)
		}
	}
	// Unreachable: the predicate rejects at most one digest in 256.
	digest := digest(tag, parts, 0)
	return Address(hex.EncodeToString(digest)), 0
}

func digest(tag string, parts [][]byte, bump uint8) []byte {
	h := sha256.New()
	writeChunk(h, []byte(tag))
	for _, p := range parts {
		writeChunk(h, p)
	}
	h.Write([]byte{bump})
	return h.Sum(nil)
}

func writeChunk(h interface{ Write([]byte) (int, error) }, b []byte) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// valid rejects digests whose final byte is zero, so that a bump exists for
// every input and re-derivation with a stored bump can be verified.
func valid(digest []byte) bool {
	return digest[len(digest)-1] != 0
}

// U64 encodes a numeric discriminator (SKU, order id) as little-endian bytes
// for use as a derivation part.
func U64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}
