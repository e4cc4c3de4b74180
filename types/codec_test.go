package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"reflect"
	"testing"

	bberrors "github.com/wippyai/bbgo/errors"
)

func mustFr(t *testing.T, dec string) Fr {
	t.Helper()
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		t.Fatalf("bad decimal %q", dec)
	}
	f, err := NewFr(n)
	if err != nil {
		t.Fatalf("NewFr(%s): %v", dec, err)
	}
	return f
}

func roundTrip(t *testing.T, k Kind, v any) any {
	t.Helper()
	enc, err := EncoderFor(k)(nil, v)
	if err != nil {
		t.Fatalf("encode %s: %v", k, err)
	}
	got, n, err := DecoderFor(k)(enc)
	if err != nil {
		t.Fatalf("decode %s: %v", k, err)
	}
	if n != len(enc) {
		t.Fatalf("decode %s consumed %d of %d bytes", k, n, len(enc))
	}
	return got
}

func TestRoundTrip(t *testing.T) {
	var buf20 [20]byte
	for i := range buf20 {
		buf20[i] = byte(i)
	}
	var b128 Buffer128
	b128[127] = 0xaa
	rMinus1 := new(big.Int).Sub(FrModulus(), big.NewInt(1))
	maxFr, _ := NewFr(rMinus1)
	qMinus1 := new(big.Int).Sub(FqModulus(), big.NewInt(1))
	maxFq, _ := NewFq(qMinus1)
	inf := Point{}
	inf.X[0] = 0x80

	tests := []struct {
		name string
		kind Kind
		v    any
	}{
		{"fr zero", FrKind, Fr{}},
		{"fr small", FrKind, FrFromUint64(4)},
		{"fr max", FrKind, maxFr},
		{"fq max", FqKind, maxFq},
		{"point", PointKind, Point{X: FqFromUint64(1), Y: FqFromUint64(2)}},
		{"point infinity", PointKind, inf},
		{"bool true", BoolKind, true},
		{"bool false", BoolKind, false},
		{"u8", Uint(8), uint8(255)},
		{"u16", Uint(16), uint16(0xbeef)},
		{"u32", Uint(32), uint32(7)},
		{"u64", Uint(64), uint64(1) << 63},
		{"buf20", FixedBuffer(20), buf20},
		{"buf128", FixedBuffer(128), b128},
		{"ptr", PtrKind, Ptr(0x1000)},
		{"string", StringKind, "hello, κόσμε"},
		{"empty string", StringKind, ""},
		{"bytes", BytesKind, []byte("Hello world!")},
		{"vec fr", VectorOf(FrKind), []Fr{FrFromUint64(4), FrFromUint64(8), FrFromUint64(12)}},
		{"vec point", VectorOf(PointKind), []Point{{X: FqFromUint64(3), Y: FqFromUint64(4)}}},
		{"vec string", VectorOf(StringKind), []string{"a", "", "bc"}},
		{"vec vec u32", VectorOf(VectorOf(Uint(32))), [][]uint32{{1, 2}, {}, {3}}},
		{"vec bytes", VectorOf(BytesKind), [][]byte{{1}, {}, {2, 3}}},
		{"vec buf128", VectorOf(FixedBuffer(128)), []Buffer128{b128, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, tt.kind, tt.v)
			if !reflect.DeepEqual(got, tt.v) {
				t.Errorf("round trip = %#v, want %#v", got, tt.v)
			}
		})
	}
}

func TestVectorFraming(t *testing.T) {
	k := VectorOf(FrKind)
	enc, err := EncoderFor(k)(nil, []Fr{FrFromUint64(4), FrFromUint64(8), FrFromUint64(12)})
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 4+3*32 {
		t.Fatalf("len = %d, want %d", len(enc), 4+3*32)
	}
	if !bytes.Equal(enc[:4], []byte{0, 0, 0, 3}) {
		t.Errorf("count prefix = %x, want 00000003", enc[:4])
	}
	for i, want := range []byte{4, 8, 12} {
		elem := enc[4+i*32 : 4+(i+1)*32]
		if elem[31] != want || !bytes.Equal(elem[:31], make([]byte, 31)) {
			t.Errorf("element %d = %x", i, elem)
		}
	}

	t.Run("empty", func(t *testing.T) {
		enc, err := EncoderFor(k)(nil, []Fr{})
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(enc, []byte{0, 0, 0, 0}) {
			t.Errorf("empty vector = %x", enc)
		}
		got, n, err := DecoderFor(k)(enc)
		if err != nil {
			t.Fatal(err)
		}
		if n != 4 {
			t.Errorf("consumed %d, want 4", n)
		}
		fs, ok := got.([]Fr)
		if !ok || fs == nil || len(fs) != 0 {
			t.Errorf("decoded %#v, want empty non-nil []Fr", got)
		}
	})

	t.Run("nil slice encodes empty", func(t *testing.T) {
		enc, err := EncoderFor(VectorOf(PointKind))(nil, []Point(nil))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(enc, []byte{0, 0, 0, 0}) {
			t.Errorf("got %x", enc)
		}
	})

	t.Run("any elements", func(t *testing.T) {
		enc, err := EncoderFor(VectorOf(Uint(32)))(nil, []any{1, uint32(2), 3.0})
		if err != nil {
			t.Fatal(err)
		}
		want, _ := hex.DecodeString("00000003" + "00000001" + "00000002" + "00000003")
		if !bytes.Equal(enc, want) {
			t.Errorf("got %x, want %x", enc, want)
		}
	})
}

func TestEncodingByteOrder(t *testing.T) {
	tests := []struct {
		kind Kind
		v    any
		want string
	}{
		{Uint(32), 7, "00000007"},
		{Uint(16), uint16(0x0102), "0102"},
		{Uint(64), uint64(0x0102030405060708), "0102030405060708"},
		{PtrKind, Ptr(0x01020304), "04030201"},
		{StringKind, "hi", "000000026869"},
		{BoolKind, true, "01"},
		{FrKind, 1, "0000000000000000000000000000000000000000000000000000000000000001"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			enc, err := EncoderFor(tt.kind)(nil, tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if got := hex.EncodeToString(enc); got != tt.want {
				t.Errorf("encoding = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncode_DomainErrors(t *testing.T) {
	var tooBig Fr
	FrModulus().FillBytes(tooBig[:])
	var badX Point
	FqModulus().FillBytes(badX.X[:])

	tests := []struct {
		name string
		kind Kind
		v    any
	}{
		{"u8 overflow", Uint(8), 300},
		{"u32 overflow", Uint(32), uint64(1) << 32},
		{"u32 negative", Uint(32), -1},
		{"u32 fractional", Uint(32), 1.5},
		{"u32 from string", Uint(32), "7"},
		{"fr equal to modulus", FrKind, tooBig},
		{"fr big negative", FrKind, big.NewInt(-1)},
		{"fr wrong type", FrKind, "4"},
		{"fq given fr", FqKind, Fr{}},
		{"point x out of field", PointKind, badX},
		{"buffer short", FixedBuffer(32), make([]byte, 31)},
		{"buffer wrong array", FixedBuffer(32), Buffer64{}},
		{"string invalid utf8", StringKind, string([]byte{0xff, 0xfe})},
		{"bool from int", BoolKind, 1},
		{"vector of wrong type", VectorOf(FrKind), Fr{}},
		{"ptr overflow", PtrKind, uint64(1) << 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := []byte{9, 9}
			out, err := EncoderFor(tt.kind)(dst, tt.v)
			if !errors.Is(err, bberrors.ErrEncoding) {
				t.Fatalf("err = %v, want encoding error", err)
			}
			if len(out) != 2 {
				t.Errorf("dst grew to %d bytes on error", len(out))
			}
		})
	}
}

func TestEncode_VectorElementPath(t *testing.T) {
	_, err := EncoderFor(VectorOf(Uint(8)))(nil, []int{1, 2, 256})
	var e *bberrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if len(e.Path) != 1 || e.Path[0] != "[2]" {
		t.Errorf("Path = %v, want [[2]]", e.Path)
	}
}

func TestDecode_ShortInput(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		src  []byte
	}{
		{"fr", FrKind, make([]byte, 31)},
		{"point", PointKind, make([]byte, 63)},
		{"u64", Uint(64), make([]byte, 7)},
		{"string prefix", StringKind, []byte{0, 0}},
		{"string body", StringKind, []byte{0, 0, 0, 5, 'a'}},
		{"vector count", VectorOf(FrKind), []byte{0, 0, 0, 2}},
		{"huge vector", VectorOf(FrKind), []byte{0xff, 0xff, 0xff, 0x00}},
		{"vector element", VectorOf(StringKind), []byte{0, 0, 0, 1, 0, 0, 0, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecoderFor(tt.kind)(tt.src)
			if !errors.Is(err, bberrors.ErrOutputSizeMismatch) {
				t.Errorf("err = %v, want output size mismatch", err)
			}
		})
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, _, err := DecoderFor(StringKind)([]byte{0, 0, 0, 1, 0xff})
	var e *bberrors.Error
	if !errors.As(err, &e) || e.Kind != bberrors.KindInvalidData {
		t.Errorf("err = %v, want invalid data", err)
	}
}

func TestDecode_CopiesBytes(t *testing.T) {
	src := []byte{0, 0, 0, 2, 1, 2}
	v, _, err := DecoderFor(BytesKind)(src)
	if err != nil {
		t.Fatal(err)
	}
	src[4] = 9
	if got := v.([]byte); got[0] != 1 {
		t.Error("decoded bytes alias the source")
	}
}

func TestDecode_Cursor(t *testing.T) {
	// Decoders report consumption so callers can walk concatenated values.
	var src []byte
	src, _ = EncoderFor(StringKind)(src, "ab")
	src, _ = EncoderFor(Uint(16))(src, 5)
	src, _ = EncoderFor(FrKind)(src, 6)

	off := 0
	var got []any
	for _, k := range []Kind{StringKind, Uint(16), FrKind} {
		v, n, err := DecoderFor(k)(src[off:])
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
		off += n
	}
	if off != len(src) {
		t.Errorf("consumed %d of %d", off, len(src))
	}
	want := []any{"ab", uint16(5), FrFromUint64(6)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFieldHelpers(t *testing.T) {
	f := mustFr(t, "16672613430297770667465722499387909817686322516130512258122141976728892914370")
	if got := f.BigInt().String(); got != "16672613430297770667465722499387909817686322516130512258122141976728892914370" {
		t.Errorf("BigInt = %s", got)
	}
	if FrFromUint64(0).IsZero() != true {
		t.Error("zero should be zero")
	}
	if got := FrFromUint64(255).String(); got != "0x00000000000000000000000000000000000000000000000000000000000000ff" {
		t.Errorf("String = %s", got)
	}
	if _, err := NewFr(FrModulus()); !errors.Is(err, bberrors.ErrEncoding) {
		t.Errorf("NewFr(r) err = %v", err)
	}
	if _, err := NewFq(FrModulus()); err != nil {
		t.Errorf("r is below q, got %v", err)
	}
	if _, err := FrFromBytes(make([]byte, 31)); err == nil {
		t.Error("FrFromBytes should reject short input")
	}
}
