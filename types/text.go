package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/bbgo/errors"
)

// ParseValue converts the text form of a value of kind k into its host type.
//
// Field elements accept decimal or 0x-prefixed hex. Points are written x:y.
// Buffers and byte vectors are hex. Other vectors are comma separated lists,
// optionally wrapped in brackets.
func ParseValue(k Kind, text string) (any, error) {
	text = strings.TrimSpace(text)
	switch k.tag {
	case TagFr:
		n, err := parseBig(text, "fr")
		if err != nil {
			return nil, err
		}
		return NewFr(n)
	case TagFq:
		n, err := parseBig(text, "fq")
		if err != nil {
			return nil, err
		}
		return NewFq(n)
	case TagPoint:
		if text == "infinity" {
			var p Point
			p.X[0] = 0x80
			return p, nil
		}
		xs, ys, ok := strings.Cut(text, ":")
		if !ok {
			return nil, errors.Encoding(nil, "point", text, "expected x:y")
		}
		x, err := ParseValue(FqKind, xs)
		if err != nil {
			return nil, errors.PrependPath(err, "x")
		}
		y, err := ParseValue(FqKind, ys)
		if err != nil {
			return nil, errors.PrependPath(err, "y")
		}
		return Point{X: x.(Fq), Y: y.(Fq)}, nil
	case TagBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.Encoding(nil, "bool", text, err.Error())
		}
		return b, nil
	case TagUint:
		u, err := strconv.ParseUint(text, 0, k.width)
		if err != nil {
			return nil, errors.Encoding(nil, k.String(), text, err.Error())
		}
		return reflect.ValueOf(u).Convert(HostType(k)).Interface(), nil
	case TagPtr:
		u, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return nil, errors.Encoding(nil, "ptr", text, err.Error())
		}
		return Ptr(u), nil
	case TagString:
		return text, nil
	case TagBuffer:
		b, err := parseHex(text, k.String())
		if err != nil {
			return nil, err
		}
		v, _, err := DecoderFor(k)(b)
		if err != nil || len(b) != k.width {
			return nil, errors.Encoding(nil, k.String(), len(b), fmt.Sprintf("expected %d bytes, got %d", k.width, len(b)))
		}
		return v, nil
	case TagVector:
		if isBytes(k) {
			return parseHex(text, k.String())
		}
		return parseList(k, text)
	}
	return nil, errors.Schema("", "cannot parse kind %s", k)
}

func parseList(k Kind, text string) (any, error) {
	elem := k.Elem()
	if elem.tag == TagVector && !isBytes(elem) {
		return nil, errors.Encoding(nil, k.String(), text, "nested vectors have no text form")
	}
	text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	out := reflect.MakeSlice(HostType(k), 0, 0)
	if strings.TrimSpace(text) == "" {
		return out.Interface(), nil
	}
	for i, part := range strings.Split(text, ",") {
		v, err := ParseValue(elem, part)
		if err != nil {
			return nil, errors.PrependPath(err, fmt.Sprintf("[%d]", i))
		}
		out = reflect.Append(out, reflect.ValueOf(v))
	}
	return out.Interface(), nil
}

func parseBig(text, tag string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, errors.Encoding(nil, tag, text, "not an integer")
	}
	return n, nil
}

func parseHex(text, tag string) ([]byte, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Encoding(nil, tag, text, err.Error())
	}
	return b, nil
}

// FormatValue renders v, a value of kind k, in the text form ParseValue
// accepts. Field elements are printed in decimal.
func FormatValue(k Kind, v any) string {
	switch x := v.(type) {
	case Fr:
		return x.BigInt().String()
	case Fq:
		return x.BigInt().String()
	case Point:
		if x.IsInfinity() {
			return "infinity"
		}
		return x.X.BigInt().String() + ":" + x.Y.BigInt().String()
	case Ptr:
		return x.String()
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case string:
		return x
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return "<nil>"
	case rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8:
		b := make([]byte, rv.Len())
		for i := range b {
			b[i] = byte(rv.Index(i).Uint())
		}
		return "0x" + hex.EncodeToString(b)
	case rv.Kind() == reflect.Slice && k.tag == TagVector:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(k.Elem(), rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}
