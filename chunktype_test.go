// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details

package main

import (
	"errors"
	"testing"
)

func TestChunkTypeFromBytes(t *testing.T) {
	ct := ChunkTypeFromBytes([4]byte{82, 117, 83, 116})
	if ct.Bytes() != [4]byte{82, 117, 83, 116} {
		t.Fatalf("got %v", ct.Bytes())
	}
	if ct.String() != "RuSt" {
		t.Fatalf("got %q", ct.String())
	}
}

func TestChunkTypeFromString(t *testing.T) {
	ct, err := ChunkTypeFromString("RuSt")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if ct != ChunkTypeFromBytes([4]byte{82, 117, 83, 116}) {
		t.Fatalf("got %v", ct)
	}
	if ct.String() != "RuSt" {
		t.Fatalf("round-trip got %q", ct.String())
	}
}

func TestChunkTypeFromStringInvalid(t *testing.T) {
	for _, s := range []string{"Ru1t", "Ru t", "Rus", "RuSty", ""} {
		if _, err := ChunkTypeFromString(s); !errors.Is(err, ErrInvalidTypeCode) {
			t.Fatalf("%q: got %v - expected ErrInvalidTypeCode", s, err)
		}
	}
}

func TestChunkTypeProperties(t *testing.T) {
	tests := []struct {
		code                                     string
		critical, public, reservedOK, safeToCopy bool
	}{
		{"RuSt", true, false, true, true},
		{"ruSt", false, false, true, true},
		{"RUSt", true, true, true, true},
		{"RuST", true, false, true, false},
		{"Rust", true, false, false, true},
		{"IHDR", true, true, true, false},
		{"tEXt", false, true, true, true},
	}
	for _, tc := range tests {
		ct, err := ChunkTypeFromString(tc.code)
		if err != nil {
			t.Fatalf("%q: %+v", tc.code, err)
		}
		if ct.IsCritical() != tc.critical {
			t.Errorf("%q: IsCritical = %v", tc.code, ct.IsCritical())
		}
		if ct.IsPublic() != tc.public {
			t.Errorf("%q: IsPublic = %v", tc.code, ct.IsPublic())
		}
		if ct.IsReservedBitValid() != tc.reservedOK {
			t.Errorf("%q: IsReservedBitValid = %v", tc.code, ct.IsReservedBitValid())
		}
		if ct.IsSafeToCopy() != tc.safeToCopy {
			t.Errorf("%q: IsSafeToCopy = %v", tc.code, ct.IsSafeToCopy())
		}
	}
}

func TestChunkTypeIsValid(t *testing.T) {
	// Validity depends on the reserved bit alone for well-formed codes.
	valid, err := ChunkTypeFromString("RuSt")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !valid.IsValid() {
		t.Fatalf("RuSt should be valid")
	}
	invalid, err := ChunkTypeFromString("Rust")
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if invalid.IsValid() {
		t.Fatalf("Rust should be invalid")
	}
	// Non-letter bytes are representable via ChunkTypeFromBytes but
	// report invalid.
	if ChunkTypeFromBytes([4]byte{'R', 'u', '1', 't'}).IsValid() {
		t.Fatalf("Ru1t should be invalid")
	}
}
