package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func fibonacciInput(n int) []byte {
	var out []byte
	a, b := 1, 1
	for symbol := 0; symbol < n; symbol++ {
		out = append(out, bytes.Repeat([]byte{byte(symbol)}, a)...)
		a, b = b, a+b
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 4096)
	rng.Read(random)

	everyByte := make([]byte, NumSymbols)
	for i := range everyByte {
		everyByte[i] = byte(i)
	}

	type testRow struct {
		name  string
		input []byte
	}

	testData := [...]testRow{
		{name: "empty", input: []byte{}},
		{name: "one byte", input: []byte{42}},
		{name: "one symbol", input: bytes.Repeat([]byte{0xff}, 1000)},
		{name: "two symbols", input: []byte{0, 1, 1, 0, 1}},
		{name: "histogram", input: []byte{3, 0, 0, 5, 5, 5, 0, 0, 0, 1, 2, 0, 5, 5, 2, 3, 3}},
		{name: "text", input: []byte("The quick brown fox jumps over the lazy dog.")},
		{name: "every byte", input: everyByte},
		{name: "random", input: random},
		{name: "deep tree", input: fibonacciInput(20)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			wire, err := Encode(row.input)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			actual, err := Decode(wire)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(row.input, actual) {
				t.Errorf("round trip mismatch:\n\texpect: % x\n\tactual: % x", row.input, actual)
			}
		})
	}
}

func TestRoundTrip_DeepTree(t *testing.T) {
	input := fibonacciInput(20)
	var e Encoder
	if err := e.Init(input); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if e.Table().MaxSize() != 19 {
		t.Errorf("expected a 19-bit longest code, got %d", e.Table().MaxSize())
	}
}

func TestDecode_Empty(t *testing.T) {
	out, err := Decode([]byte{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got % x", out)
	}
}

func TestDecode_SingleSymbolLaw(t *testing.T) {
	wire, err := Encode(bytes.Repeat([]byte{'z'}, 20))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var cb Codebook
	if err := cb.UnmarshalBinary(wire[:5]); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if len(cb) != 1 || cb[0].Symbol != 'z' || cb[0].Code != MakeCode(false) {
		t.Errorf("expected a single code \"0\" for 'z', got %v", cb)
	}
}

func TestDecode_IgnoresTrailingBits(t *testing.T) {
	input := []byte("abcabcabd")
	wire, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	wire = append(wire, 0xff, 0xff)
	actual, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
	}
}

func TestDecode_Errors(t *testing.T) {
	valid, err := Encode([]byte("hello, world"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	r := bytes.NewReader(valid)
	if _, err := ReadCodebook(r); err != nil {
		t.Fatalf("ReadCodebook failed: %v", err)
	}
	preambleLen := len(valid) - r.Len()

	longer := append([]byte(nil), valid...)
	longer[preambleLen] = 0x7f

	type testRow struct {
		name   string
		input  []byte
		expect error
	}

	testData := [...]testRow{
		{name: "truncated preamble", input: valid[:preambleLen-1], expect: ErrTruncatedStream},
		{name: "missing length", input: valid[:preambleLen], expect: ErrTruncatedStream},
		{name: "short length", input: valid[:preambleLen+2], expect: ErrTruncatedStream},
		{name: "truncated body", input: valid[:len(valid)-1], expect: ErrTruncatedStream},
		{name: "length too long", input: longer, expect: ErrTruncatedStream},
		{
			name:   "duplicate value",
			input:  []byte{0x00, 0x02, 0x05, 0x01, 0x00, 0x05, 0x01, 0x80, 0x00, 0x00, 0x00, 0x01, 0x00},
			expect: ErrDuplicateValue,
		},
		{
			name:   "incomplete tree",
			input:  []byte{0x00, 0x02, 0x05, 0x01, 0x00, 0x06, 0x02, 0x80, 0x00, 0x00, 0x00, 0x01, 0x00},
			expect: ErrIncompleteTree,
		},
		{
			name:   "no codes",
			input:  []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			expect: ErrEmptyCodebook,
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			out, err := Decode(row.input)
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
			if out != nil {
				t.Errorf("expected no output, got % x", out)
			}
		})
	}
}

func TestDecoder_DecodeFrom(t *testing.T) {
	input := []byte("streams are read to the end")
	wire, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var d Decoder
	actual, err := d.DecodeFrom(bytes.NewReader(wire))
	if err != nil {
		t.Fatalf("DecodeFrom failed: %v", err)
	}
	if !bytes.Equal(input, actual) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
	}
}

func TestDecoder_Cache(t *testing.T) {
	cache, err := NewTreeCache(4)
	if err != nil {
		t.Fatalf("NewTreeCache failed: %v", err)
	}
	d := Decoder{Cache: cache}

	var e Encoder
	if err := e.Init([]byte("abracadabra")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, input := range []string{"abracadabra", "cadabra", "bar"} {
		wire, err := e.Encode([]byte(input))
		if err != nil {
			t.Fatalf("Encode(%q) failed: %v", input, err)
		}
		actual, err := d.Decode(wire)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", input, err)
		}
		if string(actual) != input {
			t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", input, actual)
		}
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 cached tree, got %d", cache.Len())
	}

	bad := []byte{0x00, 0x02, 0x05, 0x01, 0x00, 0x05, 0x01, 0x80, 0x00, 0x00, 0x00, 0x01, 0x00}
	if _, err := d.Decode(bad); !errors.Is(err, ErrDuplicateValue) {
		t.Errorf("expected ErrDuplicateValue, got %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("invalid codebook was cached")
	}
}
