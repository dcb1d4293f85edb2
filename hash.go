package lrucache

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/segmentio/fasthash/fnv1a"
)

const (
	HashMurmur2 = "murmur2"
	HashXXHash  = "xxhash"
	HashFNV1a   = "fnv1a"
)

// hashFunc maps a key to a 32 bit value. The seed is fixed per cache
// instance so bucket placement is not predictable across instances.
type hashFunc func(seed uint64, key []byte) uint32

func hashFuncFor(name string) (hashFunc, error) {
	switch name {
	case HashMurmur2, "":
		return murmur2, nil
	case HashXXHash:
		return xxhash32, nil
	case HashFNV1a:
		return fnv1a32, nil
	default:
		return nil, errors.Errorf("unknown hash %q", name)
	}
}

// murmur2 is MurmurHash2 by Austin Appleby, seeded with the low 32 bits of
// seed.
func murmur2(seed uint64, key []byte) uint32 {
	const (
		m = 0x5bd1e995
		r = 24
	)

	h := uint32(seed) ^ uint32(len(key))
	data := key
	for len(data) >= 4 {
		k := binary.LittleEndian.Uint32(data)
		k *= m
		k ^= k >> r
		k *= m
		h *= m
		h ^= k
		data = data[4:]
	}

	switch len(data) {
	case 3:
		h ^= uint32(data[2]) << 16
		fallthrough
	case 2:
		h ^= uint32(data[1]) << 8
		fallthrough
	case 1:
		h ^= uint32(data[0])
		h *= m
	}

	h ^= h >> 13
	h *= m
	h ^= h >> 15
	return h
}

func xxhash32(seed uint64, key []byte) uint32 {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], seed)

	d := xxhash.New()
	_, _ = d.Write(s[:])
	_, _ = d.Write(key)
	return fold(d.Sum64())
}

func fnv1a32(seed uint64, key []byte) uint32 {
	h := fnv1a.AddUint64(fnv1a.Init64, seed)
	h = fnv1a.AddBytes64(h, key)
	return fold(h)
}

func fold(h uint64) uint32 {
	return uint32(h ^ h>>32)
}
