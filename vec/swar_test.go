package vec

import "testing"

func TestEqMask(t *testing.T) {
	cases := []struct {
		a, b uint64
		want uint64
	}{
		{0, 0, laneMSB},
		{0x0102030405060708, 0x0102030405060708, laneMSB},
		{0x0102030405060708, 0x0102030405060709, laneMSB &^ 0x80},
		{broadcast('-'), broadcast('A'), 0},
		{0x2d412d412d412d41, broadcast('-'), 0x8000800080008000},
		// Lane 0 matches while lane 1 xors to 0x01 ('D' vs 'E'); lane 1
		// must not be flagged.
		{0x4141414141414441, 0x4141414141414541, laneMSB &^ 0x8000},
		// Same shape against an indeterminate broadcast: 'X' matches,
		// the neighboring 'Y' xors to 0x01.
		{0x4141414141415958, broadcast('X'), 0x80},
	}
	for _, c := range cases {
		if got := eqMask(c.a, c.b); got != c.want {
			t.Errorf("eqMask(%#x, %#x) = %#x, want %#x", c.a, c.b, got, c.want)
		}
	}
}

func TestEqMaskExhaustiveSingleLane(t *testing.T) {
	// The zero-byte detector must be exact for every byte pair in a lane.
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			got := eqMask(uint64(x), uint64(y))&0x80 != 0
			if got != (x == y) {
				t.Fatalf("eqMask lane 0 for bytes %#x, %#x: got %v, want %v", x, y, got, x == y)
			}
		}
	}
}

func TestEqMaskExhaustiveAdjacentLane(t *testing.T) {
	// Lane 0 always matches here, so a detector whose per-lane arithmetic
	// leaks into the neighbor gets lane 1 wrong. Every byte pair in lane 1
	// must still be classified exactly.
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			got := eqMask(uint64(x)<<8, uint64(y)<<8)
			if got&0x80 == 0 {
				t.Fatalf("eqMask lane 0 not flagged for equal bytes (lane 1 = %#x, %#x)", x, y)
			}
			if lane1 := got&0x8000 != 0; lane1 != (x == y) {
				t.Fatalf("eqMask lane 1 for bytes %#x, %#x: got %v, want %v", x, y, lane1, x == y)
			}
		}
	}
}

func TestBroadcast(t *testing.T) {
	if got := broadcast('-'); got != 0x2d2d2d2d2d2d2d2d {
		t.Errorf("broadcast('-') = %#x", got)
	}
	if got := broadcast(0); got != 0 {
		t.Errorf("broadcast(0) = %#x", got)
	}
	if got := broadcast(0xff); got != 0xffffffffffffffff {
		t.Errorf("broadcast(0xff) = %#x", got)
	}
}

func TestSumLanes(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 0},
		{laneLSB, 8},
		{0xff, 255},
		{broadcast(0xff), 8 * 255},
		{0x0102030405060708, 36},
	}
	for _, c := range cases {
		if got := sumLanes(c.v); got != c.want {
			t.Errorf("sumLanes(%#x) = %d, want %d", c.v, got, c.want)
		}
	}
}
