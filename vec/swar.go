// Copyright 2025 trimstats Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vec

// SWAR (SIMD-within-a-register) primitives over 64-bit words holding eight
// byte lanes. The wide kernels are built entirely out of these; the Go
// compiler lowers the word loads and logic ops to plain integer
// instructions, so the code is portable and endianness-independent (both
// operands of every comparison are loaded the same way, and all reductions
// are order-insensitive counts).

const (
	wordBytes = 8

	// laneLSB has the low bit of every byte lane set, laneMSB the high
	// bit, laneLow7 the seven low bits.
	laneLSB  = 0x0101010101010101
	laneMSB  = 0x8080808080808080
	laneLow7 = 0x7f7f7f7f7f7f7f7f
)

// broadcast replicates b into all eight byte lanes.
func broadcast(b byte) uint64 {
	return laneLSB * uint64(b)
}

// eqMask returns a word with 0x80 in every byte lane where a and b hold
// equal bytes, and 0x00 elsewhere. For x = a XOR b, the sum
// (x & 0x7f) + 0x7f sets a lane's high bit exactly when its low seven
// bits are nonzero and cannot carry into the next lane; OR-ing x itself
// covers the high bit, so the complement keeps 0x80 only where x is
// zero. The subtraction-based detector (x - laneLSB) & ^x & laneMSB is
// not usable here: a matching lane borrows into its neighbor and flags
// it falsely when the neighbor's xor is 0x01.
func eqMask(a, b uint64) uint64 {
	x := a ^ b
	return ^(((x & laneLow7) + laneLow7) | x | laneLow7)
}

// sumLanes adds up the eight byte lanes of a word. It widens pairwise
// (8x8 -> 4x16 -> 2x32 -> 1x64), so it is safe for any lane values; the
// kernels call it on accumulators holding up to 255 per lane.
func sumLanes(v uint64) int {
	v = (v & 0x00ff00ff00ff00ff) + ((v >> 8) & 0x00ff00ff00ff00ff)
	v = (v & 0x0000ffff0000ffff) + ((v >> 16) & 0x0000ffff0000ffff)
	return int((v & 0x00000000ffffffff) + (v >> 32))
}
