package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"unicode/utf8"

	"github.com/wippyai/bbgo/errors"
)

// Encoder appends the canonical encoding of v to dst. On error dst is
// returned with its original length.
type Encoder func(dst []byte, v any) ([]byte, error)

// Decoder reads one value from the front of src and reports how many bytes
// it consumed.
type Decoder func(src []byte) (v any, n int, err error)

// EncoderFor returns the encoder for k. An invalid kind yields an encoder
// that always fails.
func EncoderFor(k Kind) Encoder {
	switch k.tag {
	case TagFr:
		return encodeFr
	case TagFq:
		return encodeFq
	case TagPoint:
		return encodePoint
	case TagBool:
		return encodeBool
	case TagUint:
		if k.IsValid() {
			return uintEncoder(k)
		}
	case TagBuffer:
		if k.width > 0 {
			return bufferEncoder(k.width)
		}
	case TagPtr:
		return encodePtr
	case TagString:
		return encodeString
	case TagVector:
		if k.IsValid() {
			return vectorEncoder(k)
		}
	}
	return invalidEncoder(k)
}

// DecoderFor returns the decoder for k. An invalid kind yields a decoder
// that always fails.
func DecoderFor(k Kind) Decoder {
	switch k.tag {
	case TagFr:
		return decodeFr
	case TagFq:
		return decodeFq
	case TagPoint:
		return decodePoint
	case TagBool:
		return decodeBool
	case TagUint:
		if k.IsValid() {
			return uintDecoder(k)
		}
	case TagBuffer:
		if k.width > 0 {
			return bufferDecoder(k)
		}
	case TagPtr:
		return decodePtr
	case TagString:
		return decodeString
	case TagVector:
		if k.IsValid() {
			return vectorDecoder(k)
		}
	}
	return invalidDecoder(k)
}

func invalidEncoder(k Kind) Encoder {
	return func(dst []byte, _ any) ([]byte, error) {
		return dst, errors.Schema("", "no encoder for kind %s", k)
	}
}

func invalidDecoder(k Kind) Decoder {
	return func([]byte) (any, int, error) {
		return nil, 0, errors.Schema("", "no decoder for kind %s", k)
	}
}

func goTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Field elements

func encodeFr(dst []byte, v any) ([]byte, error) {
	var f Fr
	switch x := v.(type) {
	case Fr:
		f = x
	case *Fr:
		if x == nil {
			return dst, errors.TypeMismatch(nil, "*types.Fr(nil)", "fr")
		}
		f = *x
	case *big.Int:
		if err := setField(f[:], x, frModulus, "fr"); err != nil {
			return dst, err
		}
	default:
		u, ok := coerceUint(v)
		if !ok {
			return dst, mismatchOrRange(v, "fr")
		}
		f = FrFromUint64(u)
	}
	if !inField(f[:], frModulus) {
		return dst, errors.Encoding(nil, "fr", f.String(), "value not below field modulus")
	}
	return append(dst, f[:]...), nil
}

func encodeFq(dst []byte, v any) ([]byte, error) {
	var f Fq
	switch x := v.(type) {
	case Fq:
		f = x
	case *Fq:
		if x == nil {
			return dst, errors.TypeMismatch(nil, "*types.Fq(nil)", "fq")
		}
		f = *x
	case *big.Int:
		if err := setField(f[:], x, fqModulus, "fq"); err != nil {
			return dst, err
		}
	default:
		u, ok := coerceUint(v)
		if !ok {
			return dst, mismatchOrRange(v, "fq")
		}
		f = FqFromUint64(u)
	}
	if !inField(f[:], fqModulus) {
		return dst, errors.Encoding(nil, "fq", f.String(), "value not below field modulus")
	}
	return append(dst, f[:]...), nil
}

func decodeFr(src []byte) (any, int, error) {
	if len(src) < FieldSize {
		return nil, 0, errors.ShortRead("fr", FieldSize, len(src))
	}
	var f Fr
	copy(f[:], src)
	return f, FieldSize, nil
}

func decodeFq(src []byte) (any, int, error) {
	if len(src) < FieldSize {
		return nil, 0, errors.ShortRead("fq", FieldSize, len(src))
	}
	var f Fq
	copy(f[:], src)
	return f, FieldSize, nil
}

func encodePoint(dst []byte, v any) ([]byte, error) {
	var p Point
	switch x := v.(type) {
	case Point:
		p = x
	case *Point:
		if x == nil {
			return dst, errors.TypeMismatch(nil, "*types.Point(nil)", "point")
		}
		p = *x
	default:
		return dst, errors.TypeMismatch(nil, goTypeName(v), "point")
	}
	if !p.IsInfinity() {
		if !inField(p.X[:], fqModulus) {
			return dst, errors.Encoding([]string{"x"}, "point", p.X.String(), "coordinate not below base field modulus")
		}
		if !inField(p.Y[:], fqModulus) {
			return dst, errors.Encoding([]string{"y"}, "point", p.Y.String(), "coordinate not below base field modulus")
		}
	}
	dst = append(dst, p.X[:]...)
	return append(dst, p.Y[:]...), nil
}

func decodePoint(src []byte) (any, int, error) {
	if len(src) < PointSize {
		return nil, 0, errors.ShortRead("point", PointSize, len(src))
	}
	var p Point
	copy(p.X[:], src[:FieldSize])
	copy(p.Y[:], src[FieldSize:PointSize])
	return p, PointSize, nil
}

// Scalars

func encodeBool(dst []byte, v any) ([]byte, error) {
	b, ok := v.(bool)
	if !ok {
		return dst, errors.TypeMismatch(nil, goTypeName(v), "bool")
	}
	if b {
		return append(dst, 1), nil
	}
	return append(dst, 0), nil
}

func decodeBool(src []byte) (any, int, error) {
	if len(src) < 1 {
		return nil, 0, errors.ShortRead("bool", 1, 0)
	}
	return src[0] != 0, 1, nil
}

func uintEncoder(k Kind) Encoder {
	bits := k.width
	tag := k.String()
	return func(dst []byte, v any) ([]byte, error) {
		u, ok := coerceUint(v)
		if !ok {
			return dst, mismatchOrRange(v, tag)
		}
		if bits < 64 && u>>bits != 0 {
			return dst, errors.Overflow(nil, v, tag)
		}
		switch bits {
		case 8:
			return append(dst, byte(u)), nil
		case 16:
			return binary.BigEndian.AppendUint16(dst, uint16(u)), nil
		case 32:
			return binary.BigEndian.AppendUint32(dst, uint32(u)), nil
		default:
			return binary.BigEndian.AppendUint64(dst, u), nil
		}
	}
}

func uintDecoder(k Kind) Decoder {
	size := k.width / 8
	tag := k.String()
	return func(src []byte) (any, int, error) {
		if len(src) < size {
			return nil, 0, errors.ShortRead(tag, size, len(src))
		}
		switch size {
		case 1:
			return src[0], 1, nil
		case 2:
			return binary.BigEndian.Uint16(src), 2, nil
		case 4:
			return binary.BigEndian.Uint32(src), 4, nil
		default:
			return binary.BigEndian.Uint64(src), 8, nil
		}
	}
}

func encodePtr(dst []byte, v any) ([]byte, error) {
	var p uint64
	switch x := v.(type) {
	case Ptr:
		p = uint64(x)
	default:
		u, ok := coerceUint(v)
		if !ok {
			return dst, mismatchOrRange(v, "ptr")
		}
		if u > math.MaxUint32 {
			return dst, errors.Overflow(nil, v, "ptr")
		}
		p = u
	}
	return binary.LittleEndian.AppendUint32(dst, uint32(p)), nil
}

func decodePtr(src []byte) (any, int, error) {
	if len(src) < PtrSize {
		return nil, 0, errors.ShortRead("ptr", PtrSize, len(src))
	}
	return Ptr(binary.LittleEndian.Uint32(src)), PtrSize, nil
}

// Buffers

func bufferEncoder(n int) Encoder {
	tag := "buf" + fmt.Sprint(n)
	return func(dst []byte, v any) ([]byte, error) {
		switch x := v.(type) {
		case []byte:
			if len(x) != n {
				return dst, errors.Encoding(nil, tag, len(x), fmt.Sprintf("expected %d bytes, got %d", n, len(x)))
			}
			return append(dst, x...), nil
		case Buffer32:
			if n == 32 {
				return append(dst, x[:]...), nil
			}
		case Buffer64:
			if n == 64 {
				return append(dst, x[:]...), nil
			}
		case Buffer128:
			if n == 128 {
				return append(dst, x[:]...), nil
			}
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
			return dst, errors.TypeMismatch(nil, goTypeName(v), tag)
		}
		if rv.Len() != n {
			return dst, errors.Encoding(nil, tag, rv.Len(), fmt.Sprintf("expected %d bytes, got %d", n, rv.Len()))
		}
		for i := 0; i < n; i++ {
			dst = append(dst, byte(rv.Index(i).Uint()))
		}
		return dst, nil
	}
}

func bufferDecoder(k Kind) Decoder {
	n := k.width
	tag := k.String()
	host := HostType(k)
	return func(src []byte) (any, int, error) {
		if len(src) < n {
			return nil, 0, errors.ShortRead(tag, n, len(src))
		}
		switch n {
		case 32:
			var b Buffer32
			copy(b[:], src)
			return b, n, nil
		case 64:
			var b Buffer64
			copy(b[:], src)
			return b, n, nil
		case 128:
			var b Buffer128
			copy(b[:], src)
			return b, n, nil
		}
		arr := reflect.New(host).Elem()
		reflect.Copy(arr, reflect.ValueOf(src[:n]))
		return arr.Interface(), n, nil
	}
}

// Length-prefixed kinds

func encodeString(dst []byte, v any) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return dst, errors.TypeMismatch(nil, goTypeName(v), "string")
	}
	if !utf8.ValidString(s) {
		return dst, errors.InvalidUTF8(errors.PhaseEncode, nil, []byte(s))
	}
	if uint64(len(s)) > math.MaxUint32 {
		return dst, errors.Overflow(nil, len(s), "string")
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...), nil
}

func decodeString(src []byte) (any, int, error) {
	if len(src) < PrefixSize {
		return nil, 0, errors.ShortRead("string", PrefixSize, len(src))
	}
	n := binary.BigEndian.Uint32(src)
	if uint64(n) > uint64(len(src)-PrefixSize) {
		return nil, 0, errors.ShortRead("string", PrefixSize+int(n), len(src))
	}
	data := src[PrefixSize : PrefixSize+int(n)]
	if !utf8.Valid(data) {
		return nil, 0, errors.InvalidUTF8(errors.PhaseDecode, nil, data)
	}
	return string(data), PrefixSize + int(n), nil
}

func vectorEncoder(k Kind) Encoder {
	elem := k.Elem()
	tag := k.String()
	encodeElem := EncoderFor(elem)
	bytes := isBytes(k)
	return func(dst []byte, v any) ([]byte, error) {
		start := len(dst)
		if b, ok := v.([]byte); ok && bytes {
			dst = binary.BigEndian.AppendUint32(dst, uint32(len(b)))
			return append(dst, b...), nil
		}
		if fs, ok := v.([]Fr); ok && elem.tag == TagFr {
			dst = binary.BigEndian.AppendUint32(dst, uint32(len(fs)))
			for i, f := range fs {
				var err error
				if dst, err = encodeFr(dst, f); err != nil {
					return dst[:start], errors.PrependPath(err, fmt.Sprintf("[%d]", i))
				}
			}
			return dst, nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return dst, errors.TypeMismatch(nil, goTypeName(v), tag)
		}
		n := rv.Len()
		if uint64(n) > math.MaxUint32 {
			return dst, errors.Overflow(nil, n, tag)
		}
		dst = binary.BigEndian.AppendUint32(dst, uint32(n))
		for i := 0; i < n; i++ {
			var err error
			if dst, err = encodeElem(dst, rv.Index(i).Interface()); err != nil {
				return dst[:start], errors.PrependPath(err, fmt.Sprintf("[%d]", i))
			}
		}
		return dst, nil
	}
}

func vectorDecoder(k Kind) Decoder {
	elem := k.Elem()
	tag := k.String()
	decodeElem := DecoderFor(elem)
	sliceType := HostType(k)
	minElem, fixed := elem.Size()
	if !fixed {
		minElem = PrefixSize
	}
	bytes := isBytes(k)
	return func(src []byte) (any, int, error) {
		if len(src) < PrefixSize {
			return nil, 0, errors.ShortRead(tag, PrefixSize, len(src))
		}
		count := uint64(binary.BigEndian.Uint32(src))
		rest := src[PrefixSize:]
		if count*uint64(minElem) > uint64(len(rest)) {
			need := uint64(PrefixSize) + count*uint64(minElem)
			return nil, 0, errors.New(errors.PhaseDecode, errors.KindOutputSizeMismatch).
				ABI(tag).
				Detail("%d elements need at least %d bytes, have %d", count, need, len(src)).
				Build()
		}
		if bytes {
			out := make([]byte, count)
			copy(out, rest)
			return out, PrefixSize + int(count), nil
		}
		off := 0
		if elem.tag == TagFr {
			out := make([]Fr, count)
			for i := range out {
				copy(out[i][:], rest[off:])
				off += FieldSize
			}
			return out, PrefixSize + off, nil
		}
		out := reflect.MakeSlice(sliceType, int(count), int(count))
		for i := 0; i < int(count); i++ {
			v, n, err := decodeElem(rest[off:])
			if err != nil {
				return nil, 0, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
			}
			out.Index(i).Set(reflect.ValueOf(v))
			off += n
		}
		return out.Interface(), PrefixSize + off, nil
	}
}

// Integer coercion

// coerceUint converts any Go integer, or an integral float64 as produced by
// encoding/json, to uint64. Negative and fractional values are rejected.
func coerceUint(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case int8:
		if x >= 0 {
			return uint64(x), true
		}
	case int16:
		if x >= 0 {
			return uint64(x), true
		}
	case int32:
		if x >= 0 {
			return uint64(x), true
		}
	case int64:
		if x >= 0 {
			return uint64(x), true
		}
	case int:
		if x >= 0 {
			return uint64(x), true
		}
	case Ptr:
		return uint64(x), true
	case float64:
		if x >= 0 && x < math.MaxUint64 && x == math.Trunc(x) {
			return uint64(x), true
		}
	}
	return 0, false
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float64:
		return true
	}
	return false
}

func mismatchOrRange(v any, tag string) error {
	if isNumber(v) {
		return errors.Overflow(nil, v, tag)
	}
	return errors.TypeMismatch(nil, goTypeName(v), tag)
}
