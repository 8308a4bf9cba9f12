package utils

import (
	"math"
	"testing"
)

func TestFloat64ArrayRoundTrip(t *testing.T) {
	fa := []float64{0.1, -0.2, 0.3, 1e-9, math.Pi}
	got := ByteArrayToFloat64Array(Float64ArrayToByteArray(fa))
	if len(got) != len(fa) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(fa))
	}
	for i := range fa {
		if got[i] != fa[i] {
			t.Errorf("round trip [%d] = %v, want %v", i, got[i], fa[i])
		}
	}
}

func TestByteArrayToFloat64ArrayIgnoresTrailingBytes(t *testing.T) {
	b := Float64ArrayToByteArray([]float64{1, 2})
	got := ByteArrayToFloat64Array(append(b, 0xff, 0x01))
	if len(got) != 2 {
		t.Errorf("length = %d, want 2", len(got))
	}
}

func TestSha512String(t *testing.T) {
	a := Sha512String("password" + "salt1")
	b := Sha512String("password" + "salt2")
	if a == b {
		t.Error("different salts produced identical hashes")
	}
	if len(a) != 128 {
		t.Errorf("hex hash length = %d, want 128", len(a))
	}
}
