package huffman

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCode_String(t *testing.T) {
	type testRow struct {
		code   Code
		expect string
	}

	testData := [...]testRow{
		{code: Code{}, expect: `""`},
		{code: MakeCode(false), expect: `"0"`},
		{code: MakeCode(true, false, true), expect: `"101"`},
		{code: MakeCode(false, true, false, true, false, true, false, true, true, true), expect: `"0101010111"`},
	}
	for _, row := range testData {
		t.Run(row.expect, func(t *testing.T) {
			actual := row.code.String()
			if row.expect != actual {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestCode_Packed(t *testing.T) {
	type testRow struct {
		input  string
		expect []byte
	}

	testData := [...]testRow{
		{input: "1", expect: []byte{0x80}},
		{input: "011", expect: []byte{0x60}},
		{input: "0101010111", expect: []byte{0x55, 0xc0}},
		{input: "11111111", expect: []byte{0xff}},
		{input: "111111110", expect: []byte{0xff, 0x00}},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			hc, err := ParseCode(row.input)
			if err != nil {
				t.Fatalf("ParseCode failed: %v", err)
			}
			actual := hc.Packed()
			if !bytes.Equal(row.expect, actual) {
				t.Errorf("wrong bytes:\n\texpect: %#v\n\tactual: %#v", row.expect, actual)
			}
		})
	}
}

func TestCode_Equality(t *testing.T) {
	if MakeCode(false) != MakeCode(false) {
		t.Errorf("identical codes compare unequal")
	}
	if MakeCode(false, true) == MakeCode(true, false) {
		t.Errorf("different codes compare equal")
	}
	if MakeCode(true) == MakeCode(true, false) {
		t.Errorf("codes of different sizes compare equal")
	}
}

func TestCode_Append(t *testing.T) {
	var hc Code
	var err error
	for i := 0; i < MaxCodeSize; i++ {
		hc, err = hc.Append(i%2 == 1)
		if err != nil {
			t.Fatalf("Append failed at bit %d: %v", i, err)
		}
	}
	if hc.Size != MaxCodeSize {
		t.Errorf("expected size %d, got %d", MaxCodeSize, hc.Size)
	}
	if !hc.Bit(MaxCodeSize-2) || hc.Bit(MaxCodeSize-1) {
		t.Errorf("wrong trailing bits: %s", hc)
	}
	if _, err := hc.Append(false); !errors.Is(err, ErrCodeTooLong) {
		t.Errorf("expected ErrCodeTooLong, got %v", err)
	}
}

func TestParseCode_Invalid(t *testing.T) {
	for _, input := range []string{"", "012", "x", strings.Repeat("0", MaxCodeSize+1)} {
		if _, err := ParseCode(input); err == nil {
			t.Errorf("ParseCode(%q): expected error", input)
		}
	}
}

func TestCode_JSON(t *testing.T) {
	hc := MakeCode(false, true, true)

	raw, err := json.Marshal(hc)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	expectJSON := `"011"`
	if actualJSON := string(raw); expectJSON != actualJSON {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectJSON, actualJSON)
	}

	var decoded Code
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if decoded != hc {
		t.Errorf("wrong code:\n\texpect: %s\n\tactual: %s", hc, decoded)
	}
}

func TestCode_PackedMatchesPackBits(t *testing.T) {
	for _, str := range []string{"0", "1", "0110", "10110011100011110110", strings.Repeat("10", 100)} {
		hc := mustParseCode(t, str)
		if expect, actual := PackBits(hc.Bools()), hc.Packed(); !bytes.Equal(expect, actual) {
			t.Errorf("%s: expected % x, got % x", hc, expect, actual)
		}
	}
}
