//go:build amd64

package vec

import "golang.org/x/sys/cpu"

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	if cpu.X86.HasAVX2 {
		currentLevel = DispatchAVX2
		currentWidth = 32
		currentName = "avx2"
		active = swar256Kernel{}
		return
	}

	// SSE2 is baseline for amd64.
	currentLevel = DispatchSSE2
	currentWidth = 16
	currentName = "sse2"
	active = swar128Kernel{}
}
