package invite

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewCodec("test-salt")

	ids := []uint32{0, 1, 42, 9999, 1 << 20, MaxEventID}
	for _, id := range ids {
		code, err := codec.Encode(id)
		if err != nil {
			t.Fatalf("Encode(%d) failed: %v", id, err)
		}
		if len(code) != CodeLength {
			t.Errorf("Encode(%d) = %q, want %d characters", id, code, CodeLength)
		}

		got, err := codec.Decode(code)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", code, err)
		}
		if got != id {
			t.Errorf("Decode(Encode(%d)) = %d", id, got)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	codec := NewCodec("test-salt")

	a, _ := codec.Encode(1234)
	b, _ := codec.Encode(1234)
	if a != b {
		t.Errorf("same id, same salt produced different codes: %q vs %q", a, b)
	}

	// A second codec with the same salt is interchangeable.
	other := NewCodec("test-salt")
	c, _ := other.Encode(1234)
	if a != c {
		t.Errorf("independent codecs with same salt disagree: %q vs %q", a, c)
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	codec := NewCodec("test-salt")
	if _, err := codec.Encode(MaxEventID + 1); !errors.Is(err, ErrEventIDRange) {
		t.Errorf("expected ErrEventIDRange, got %v", err)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	codec := NewCodec("test-salt")

	bad := []string{"", "ABC", "ABCDEFG", "AB:DEF", "abc!ef", strings.Repeat("A", 12)}
	for _, code := range bad {
		if _, err := codec.Decode(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("Decode(%q): expected ErrInvalidCode, got %v", code, err)
		}
	}
}

func TestDecodeForgivesCrockfordAliases(t *testing.T) {
	codec := NewCodec("test-salt")

	code, _ := codec.Encode(777)
	typed := strings.ToLower(strings.ReplaceAll(code, "0", "O"))
	got, err := codec.Decode(typed)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", typed, err)
	}
	if got != 777 {
		t.Errorf("Decode(%q) = %d, want 777", typed, got)
	}
}

// TestDecodeRejectsForeignSalt checks that codes minted under one salt are
// rejected under other salts. The checksum is 8 bits, so a foreign code
// slips through with probability 1/256 per salt; across 200 sampled salts we
// require the overwhelming majority to be rejected, and any that do pass
// must at least not silently decode to the original id.
func TestDecodeRejectsForeignSalt(t *testing.T) {
	codec := NewCodec("the-real-salt")
	code, err := codec.Encode(31337)
	if err != nil {
		t.Fatal(err)
	}

	const samples = 200
	accepted := 0
	for i := 0; i < samples; i++ {
		foreign := NewCodec(fmt.Sprintf("foreign-salt-%d", i))
		id, err := foreign.Decode(code)
		if err == nil {
			accepted++
			if id == 31337 {
				t.Errorf("salt %d decoded foreign code to the original id", i)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidCode) {
			t.Errorf("salt %d: expected ErrInvalidCode, got %v", i, err)
		}
	}

	// Expected acceptances: samples/256, well under 5.
	if accepted > 5 {
		t.Errorf("foreign salts accepted the code %d/%d times", accepted, samples)
	}
}
