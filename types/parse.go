package types

import (
	"strconv"
	"strings"

	"github.com/wippyai/bbgo/errors"
)

// cTags maps the parameter types of barretenberg's c_bind headers, after
// normalization, to kinds. Input and output spellings resolve to the same kind;
// direction comes from the declaration.
var cTags = map[string]Kind{
	"fr::in_buf":      FrKind,
	"fr::out_buf":     FrKind,
	"fr::vec_in_buf":  VectorOf(FrKind),
	"fr::vec_out_buf": VectorOf(FrKind),

	"fq::in_buf":                FqKind,
	"fq::out_buf":               FqKind,
	"fq::vec_in_buf":            VectorOf(FqKind),
	"fq::vec_out_buf":           VectorOf(FqKind),
	"grumpkin::fq::in_buf":      FqKind,
	"grumpkin::fq::out_buf":     FqKind,
	"grumpkin::fr::in_buf":      FqKind,
	"grumpkin::fr::out_buf":     FqKind,
	"grumpkin::fq::vec_in_buf":  VectorOf(FqKind),
	"grumpkin::fq::vec_out_buf": VectorOf(FqKind),

	"affine_element::in_buf":      PointKind,
	"affine_element::out_buf":     PointKind,
	"affine_element::vec_in_buf":  VectorOf(PointKind),
	"affine_element::vec_out_buf": VectorOf(PointKind),

	"in_buf32":   FixedBuffer(32),
	"out_buf32":  FixedBuffer(32),
	"in_buf64":   FixedBuffer(64),
	"out_buf64":  FixedBuffer(64),
	"in_buf128":  FixedBuffer(128),
	"out_buf128": FixedBuffer(128),

	"multisig::MultiSigPublicKey::in_buf":        FixedBuffer(128),
	"multisig::MultiSigPublicKey::out_buf":       FixedBuffer(128),
	"multisig::MultiSigPublicKey::vec_in_buf":    VectorOf(FixedBuffer(128)),
	"multisig::RoundOnePublicOutput::out_buf":    FixedBuffer(128),
	"multisig::RoundOnePublicOutput::vec_in_buf": VectorOf(FixedBuffer(128)),

	"uint8_t*":    BytesKind,
	"uint8_t**":   BytesKind,
	"in_str_buf":  StringKind,
	"out_str_buf": StringKind,
	"char*":       StringKind,
	"char**":      StringKind,

	"uint32_t":  Uint(32),
	"uint32_t*": Uint(32),
	"uint64_t":  Uint(64),
	"uint64_t*": Uint(64),
	"uint16_t":  Uint(16),
	"uint16_t*": Uint(16),
	"bool":      BoolKind,
	"bool*":     BoolKind,

	"in_ptr":  PtrKind,
	"out_ptr": PtrKind,
	"void*":   PtrKind,
	"void**":  PtrKind,
}

var canonical = map[string]Kind{
	"fr":     FrKind,
	"fq":     FqKind,
	"bool":   BoolKind,
	"point":  PointKind,
	"ptr":    PtrKind,
	"string": StringKind,
	"bytes":  BytesKind,
	"u8":     Uint(8),
	"u16":    Uint(16),
	"u32":    Uint(32),
	"u64":    Uint(64),
}

// ParseKind resolves a schema tag to a kind. It accepts the canonical forms
// produced by Kind.String and the c_bind parameter types.
func ParseKind(tag string) (Kind, error) {
	k, ok := parseKind(strings.TrimSpace(tag), 0)
	if !ok {
		return Kind{}, errors.Schema("", "unknown kind %q", tag)
	}
	return k, nil
}

const maxVectorDepth = 8

func parseKind(tag string, depth int) (Kind, bool) {
	if depth > maxVectorDepth {
		return Kind{}, false
	}
	if k, ok := canonical[tag]; ok {
		return k, true
	}
	if inner, ok := strings.CutPrefix(tag, "vec<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return Kind{}, false
		}
		elem, ok := parseKind(strings.TrimSpace(inner), depth+1)
		if !ok {
			return Kind{}, false
		}
		return VectorOf(elem), true
	}
	if n, ok := strings.CutPrefix(tag, "buf"); ok {
		size, err := strconv.Atoi(n)
		if err != nil || size <= 0 || size > MaxBufferSize || n[0] == '0' || n[0] == '+' {
			return Kind{}, false
		}
		return FixedBuffer(size), true
	}
	k, ok := cTags[normalizeCType(tag)]
	return k, ok
}

// normalizeCType drops const qualifiers and whitespace, so that
// "const uint8_t *" and "uint8_t const*" compare equal.
func normalizeCType(tag string) string {
	fields := strings.Fields(strings.ReplaceAll(tag, "*", " * "))
	var b strings.Builder
	for _, f := range fields {
		if f == "const" {
			continue
		}
		b.WriteString(f)
	}
	return b.String()
}
