package main

import (
	"testing"

	"statue-viewer/internal/bmd"
)

func TestOutputVersion(t *testing.T) {
	tcs := []struct {
		in   int
		want byte
		ok   bool
	}{
		{10, bmd.VersionPlain, true},
		{12, bmd.VersionXOR, true},
		{15, 0, false},
		{266, 0, false},
		{268, 0, false},
		{-246, 0, false},
		{0, 0, false},
	}
	for _, tc := range tcs {
		got, err := outputVersion(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("outputVersion(%d) = %d, %v", tc.in, got, err)
		}
	}
}
