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

// Package vec provides the byte-lane kernels behind the alignment
// statistics engines, with runtime CPU dispatch.
//
// Every kernel implements the same Kernel interface and produces results
// that are bit-identical to the scalar reference: all per-position counts
// are exact integers, so a wider kernel may only change how the counting
// is batched, never what is counted. The active kernel is selected once at
// package initialization from the detected CPU features and never changes
// for the lifetime of the process.
//
// Basic usage:
//
//	k := vec.Active()
//	sum, length := k.PairStats(seqA, seqB, 'X')
//
// Setting TRIMSTATS_NO_SIMD=1 in the environment forces the scalar kernel,
// which is useful for debugging and for benchmarking the wide kernels
// against the reference.
package vec

import "os"

// Gap is the alignment gap character. A residue equal to Gap, or to the
// alphabet-dependent indeterminate character ('X' for amino acids, 'N' for
// nucleotides), is treated as uninformative by every kernel.
const Gap = '-'

// flushEvery is the maximum number of fused lane accumulations between
// flushes of the narrow per-lane counters into wide integers. Each step
// adds at most 1 to each 8-bit lane, so 255 steps is the largest interval
// that cannot overflow.
const flushEvery = 255

// Kernel is the capability set consumed by the statistics engines. All
// methods scan two equal-length residue strings position by position;
// they panic if the lengths differ.
//
// Implementations must be stateless: a Kernel value may be shared by any
// number of engines and goroutines.
type Kernel interface {
	// Name identifies the kernel implementation ("scalar", "swar128", ...).
	Name() string

	// Width returns the number of bytes processed per vector step:
	// 1 for the scalar reference, 16 or 32 for the wide kernels.
	Width() int

	// PairStats scans sequences a and b and returns the number of
	// positions where both residues are informative and equal (sum),
	// and the number of positions where at least one residue is
	// informative (length).
	PairStats(a, b []byte, indet byte) (sum, length int)

	// MaskedPairStats is PairStats with a per-column skip mask: a column
	// whose skip byte is 0xFF contributes to neither counter. Skip bytes
	// must be 0x00 or 0xFF. It returns the number of non-skipped columns
	// where the residues are equal and at least one is informative (hit),
	// and the number of non-skipped columns where at least one residue is
	// informative (dst). len(skip) must be at least len(a).
	MaskedPairStats(a, b, skip []byte, indet byte) (hit, dst int)

	// AddSupport increments hits[k] by one for every column k where the
	// residues of a and b either agree or are both informative.
	// len(hits) must be at least len(a). The caller must fold hits into
	// a wider accumulator at least every 255 calls; the kernel performs
	// byte-wise additions and does not guard against lane overflow.
	AddSupport(hits []byte, a, b []byte, indet byte)
}

// DispatchLevel identifies the instruction-set tier the active kernel was
// selected for.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchNEON
	DispatchAVX2
)

// String returns the lowercase name of the dispatch level.
func (l DispatchLevel) String() string {
	switch l {
	case DispatchSSE2:
		return "sse2"
	case DispatchNEON:
		return "neon"
	case DispatchAVX2:
		return "avx2"
	default:
		return "scalar"
	}
}

var (
	currentLevel DispatchLevel
	currentWidth int
	currentName  string
	active       Kernel
)

// Active returns the kernel selected at initialization. Engines capture
// this once at construction; there is no per-call dispatch.
func Active() Kernel {
	return active
}

// CurrentLevel returns the dispatch level selected at initialization.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the vector width, in bytes, of the active kernel.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns the name of the dispatch level selected at
// initialization.
func CurrentName() string {
	return currentName
}

// Kernels returns every kernel implementation compiled into this build,
// scalar first. All of them are available on every platform; dispatch only
// decides which one Active returns. Parity tests iterate this slice.
func Kernels() []Kernel {
	return []Kernel{scalarKernel{}, swar128Kernel{}, swar256Kernel{}}
}

// NoSimdEnv reports whether the TRIMSTATS_NO_SIMD environment variable
// requests the scalar kernel regardless of CPU capability.
func NoSimdEnv() bool {
	v := os.Getenv("TRIMSTATS_NO_SIMD")
	return v == "1" || v == "true"
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 1
	currentName = "scalar"
	active = scalarKernel{}
}
