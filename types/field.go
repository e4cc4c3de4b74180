package types

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/wippyai/bbgo/errors"
)

// BN254 moduli.
var (
	frModulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	fqModulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
)

// FrModulus returns the scalar field modulus r.
func FrModulus() *big.Int { return new(big.Int).Set(frModulus) }

// FqModulus returns the base field modulus q.
func FqModulus() *big.Int { return new(big.Int).Set(fqModulus) }

// Fr is an element of the BN254 scalar field in big-endian form.
type Fr [FieldSize]byte

// Fq is an element of the BN254 base field in big-endian form.
type Fq [FieldSize]byte

// Point is an affine curve point. An X with its top bit set marks the point
// at infinity.
type Point struct {
	X Fq
	Y Fq
}

// Opaque fixed-size buffers.
type (
	Buffer32  [32]byte
	Buffer64  [64]byte
	Buffer128 [128]byte
)

// Ptr is a pointer into module memory.
type Ptr uint32

// NewFr converts v to a scalar field element.
func NewFr(v *big.Int) (Fr, error) {
	var f Fr
	if err := setField(f[:], v, frModulus, "fr"); err != nil {
		return Fr{}, err
	}
	return f, nil
}

// FrFromUint64 returns v as a scalar field element.
func FrFromUint64(v uint64) Fr {
	var f Fr
	putUint64(f[:], v)
	return f
}

// FrFromBytes interprets b as a big-endian scalar and checks it against r.
func FrFromBytes(b []byte) (Fr, error) {
	if len(b) != FieldSize {
		return Fr{}, errors.Encoding(nil, "fr", len(b), fmt.Sprintf("need %d bytes, got %d", FieldSize, len(b)))
	}
	var f Fr
	copy(f[:], b)
	if !inField(f[:], frModulus) {
		return Fr{}, errors.Encoding(nil, "fr", f.String(), "value not below field modulus")
	}
	return f, nil
}

func (f Fr) BigInt() *big.Int { return new(big.Int).SetBytes(f[:]) }

func (f Fr) IsZero() bool { return f == Fr{} }

// String returns the 0x-prefixed hex form.
func (f Fr) String() string { return "0x" + hex.EncodeToString(f[:]) }

// NewFq converts v to a base field element.
func NewFq(v *big.Int) (Fq, error) {
	var f Fq
	if err := setField(f[:], v, fqModulus, "fq"); err != nil {
		return Fq{}, err
	}
	return f, nil
}

func FqFromUint64(v uint64) Fq {
	var f Fq
	putUint64(f[:], v)
	return f
}

func (f Fq) BigInt() *big.Int { return new(big.Int).SetBytes(f[:]) }

func (f Fq) IsZero() bool { return f == Fq{} }

func (f Fq) String() string { return "0x" + hex.EncodeToString(f[:]) }

// IsInfinity reports whether p carries the point-at-infinity marker.
func (p Point) IsInfinity() bool { return p.X[0]&0x80 != 0 }

func (p Point) String() string {
	if p.IsInfinity() {
		return "infinity"
	}
	return p.X.String() + ":" + p.Y.String()
}

func (p Ptr) String() string { return fmt.Sprintf("0x%08x", uint32(p)) }

func setField(dst []byte, v *big.Int, mod *big.Int, kind string) error {
	if v == nil {
		return errors.Encoding(nil, kind, nil, "nil value")
	}
	if v.Sign() < 0 {
		return errors.Encoding(nil, kind, v.String(), "negative value")
	}
	if v.Cmp(mod) >= 0 {
		return errors.Encoding(nil, kind, v.String(), "value not below field modulus")
	}
	v.FillBytes(dst)
	return nil
}

func inField(b []byte, mod *big.Int) bool {
	return new(big.Int).SetBytes(b).Cmp(mod) < 0
}

func putUint64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[len(dst)-1-i] = byte(v >> (8 * i))
	}
}
