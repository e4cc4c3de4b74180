package types

import (
	"fmt"
	"strconv"
)

// Tag discriminates the closed set of kinds that cross the module boundary.
type Tag uint8

const (
	TagInvalid Tag = iota
	TagFr
	TagFq
	TagBool
	TagUint
	TagBuffer
	TagPoint
	TagPtr
	TagString
	TagVector
)

var tagNames = [...]string{
	TagInvalid: "invalid",
	TagFr:      "fr",
	TagFq:      "fq",
	TagBool:    "bool",
	TagUint:    "uint",
	TagBuffer:  "buffer",
	TagPoint:   "point",
	TagPtr:     "ptr",
	TagString:  "string",
	TagVector:  "vector",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Kind is the abstract type of a value crossing the module boundary.
// Kinds are built with the package constructors and ParseKind; the zero
// Kind is invalid.
type Kind struct {
	elem  *Kind
	tag   Tag
	width int // bits for TagUint, bytes for TagBuffer
}

const (
	FieldSize = 32
	PointSize = 2 * FieldSize
	PtrSize   = 4
	// PrefixSize is the width of the big-endian length prefix of strings and vectors.
	PrefixSize = 4
	// MaxBufferSize bounds fixed buffer kinds.
	MaxBufferSize = 1 << 24
)

var (
	FrKind     = Kind{tag: TagFr}
	FqKind     = Kind{tag: TagFq}
	BoolKind   = Kind{tag: TagBool}
	PointKind  = Kind{tag: TagPoint}
	PtrKind    = Kind{tag: TagPtr}
	StringKind = Kind{tag: TagString}
	BytesKind  = VectorOf(Uint(8))
)

// Uint returns the unsigned integer kind of the given bit width.
// It panics unless bits is 8, 16, 32 or 64.
func Uint(bits int) Kind {
	switch bits {
	case 8, 16, 32, 64:
		return Kind{tag: TagUint, width: bits}
	}
	panic(fmt.Sprintf("types: invalid integer width %d", bits))
}

// FixedBuffer returns the kind of an opaque buffer of exactly size bytes.
// It panics unless 0 < size <= MaxBufferSize.
func FixedBuffer(size int) Kind {
	if size <= 0 || size > MaxBufferSize {
		panic(fmt.Sprintf("types: invalid buffer size %d", size))
	}
	return Kind{tag: TagBuffer, width: size}
}

// VectorOf returns the kind of a length-prefixed sequence of elem.
func VectorOf(elem Kind) Kind {
	e := elem
	return Kind{tag: TagVector, elem: &e}
}

func (k Kind) Tag() Tag {
	return k.tag
}

// Bits returns the width of an integer kind, 0 otherwise.
func (k Kind) Bits() int {
	if k.tag == TagUint {
		return k.width
	}
	return 0
}

// Elem returns the element kind of a vector. It panics for other kinds.
func (k Kind) Elem() Kind {
	if k.tag != TagVector || k.elem == nil {
		panic("types: Elem of non-vector kind " + k.String())
	}
	return *k.elem
}

func (k Kind) IsValid() bool {
	switch k.tag {
	case TagFr, TagFq, TagBool, TagPoint, TagPtr, TagString:
		return true
	case TagUint:
		return k.width == 8 || k.width == 16 || k.width == 32 || k.width == 64
	case TagBuffer:
		return k.width > 0 && k.width <= MaxBufferSize
	case TagVector:
		return k.elem != nil && k.elem.IsValid()
	default:
		return false
	}
}

// Size returns the encoded width of fixed-size kinds. ok is false for
// length-prefixed kinds.
func (k Kind) Size() (size int, ok bool) {
	switch k.tag {
	case TagFr, TagFq:
		return FieldSize, true
	case TagPoint:
		return PointSize, true
	case TagBool:
		return 1, true
	case TagUint:
		return k.width / 8, true
	case TagBuffer:
		return k.width, true
	case TagPtr:
		return PtrSize, true
	default:
		return 0, false
	}
}

// IsFixed reports whether the kind has a compile-time known width.
func (k Kind) IsFixed() bool {
	_, ok := k.Size()
	return ok
}

// Equal reports whether two kinds are structurally identical.
func (k Kind) Equal(o Kind) bool {
	if k.tag != o.tag || k.width != o.width {
		return false
	}
	if k.tag == TagVector {
		if k.elem == nil || o.elem == nil {
			return k.elem == o.elem
		}
		return k.elem.Equal(*o.elem)
	}
	return true
}

// String returns the canonical tag, which ParseKind accepts back.
func (k Kind) String() string {
	switch k.tag {
	case TagFr, TagFq, TagBool, TagPoint, TagPtr, TagString:
		return k.tag.String()
	case TagUint:
		return "u" + strconv.Itoa(k.width)
	case TagBuffer:
		return "buf" + strconv.Itoa(k.width)
	case TagVector:
		if k.elem == nil {
			return "vec<invalid>"
		}
		return "vec<" + k.elem.String() + ">"
	default:
		return "invalid"
	}
}

// GoExpr returns a Go expression that rebuilds k from outside this package.
func (k Kind) GoExpr() string {
	switch k.tag {
	case TagFr:
		return "types.FrKind"
	case TagFq:
		return "types.FqKind"
	case TagBool:
		return "types.BoolKind"
	case TagPoint:
		return "types.PointKind"
	case TagPtr:
		return "types.PtrKind"
	case TagString:
		return "types.StringKind"
	case TagUint:
		return "types.Uint(" + strconv.Itoa(k.width) + ")"
	case TagBuffer:
		return "types.FixedBuffer(" + strconv.Itoa(k.width) + ")"
	case TagVector:
		if k.elem != nil && k.elem.tag == TagUint && k.elem.width == 8 {
			return "types.BytesKind"
		}
		return "types.VectorOf(" + k.Elem().GoExpr() + ")"
	default:
		return "types.Kind{}"
	}
}
