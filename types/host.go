package types

import (
	"reflect"
	"strconv"
)

var (
	frType        = reflect.TypeOf(Fr{})
	fqType        = reflect.TypeOf(Fq{})
	pointType     = reflect.TypeOf(Point{})
	ptrType       = reflect.TypeOf(Ptr(0))
	buffer32Type  = reflect.TypeOf(Buffer32{})
	buffer64Type  = reflect.TypeOf(Buffer64{})
	buffer128Type = reflect.TypeOf(Buffer128{})
	bytesType     = reflect.TypeOf([]byte(nil))
)

// HostType returns the Go type that carries values of kind k.
// It panics on an invalid kind.
func HostType(k Kind) reflect.Type {
	switch k.tag {
	case TagFr:
		return frType
	case TagFq:
		return fqType
	case TagPoint:
		return pointType
	case TagPtr:
		return ptrType
	case TagBool:
		return reflect.TypeOf(false)
	case TagString:
		return reflect.TypeOf("")
	case TagUint:
		switch k.width {
		case 8:
			return reflect.TypeOf(uint8(0))
		case 16:
			return reflect.TypeOf(uint16(0))
		case 32:
			return reflect.TypeOf(uint32(0))
		case 64:
			return reflect.TypeOf(uint64(0))
		}
	case TagBuffer:
		switch k.width {
		case 32:
			return buffer32Type
		case 64:
			return buffer64Type
		case 128:
			return buffer128Type
		}
		if k.width > 0 {
			return reflect.ArrayOf(k.width, reflect.TypeOf(byte(0)))
		}
	case TagVector:
		return reflect.SliceOf(HostType(k.Elem()))
	}
	panic("types: no host type for kind " + k.String())
}

// GoType returns the Go type expression for k as written outside this
// package, e.g. "types.Fr", "[]types.Point" or "[]byte".
func GoType(k Kind) string {
	switch k.tag {
	case TagFr:
		return "types.Fr"
	case TagFq:
		return "types.Fq"
	case TagPoint:
		return "types.Point"
	case TagPtr:
		return "types.Ptr"
	case TagBool:
		return "bool"
	case TagString:
		return "string"
	case TagUint:
		return "uint" + strconv.Itoa(k.width)
	case TagBuffer:
		switch k.width {
		case 32:
			return "types.Buffer32"
		case 64:
			return "types.Buffer64"
		case 128:
			return "types.Buffer128"
		}
		return "[" + strconv.Itoa(k.width) + "]byte"
	case TagVector:
		if isBytes(k) {
			return "[]byte"
		}
		return "[]" + GoType(k.Elem())
	}
	return "any"
}

func isBytes(k Kind) bool {
	return k.tag == TagVector && k.elem != nil && k.elem.tag == TagUint && k.elem.width == 8
}
