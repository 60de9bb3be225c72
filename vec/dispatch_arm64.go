//go:build arm64

package vec

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// NEON (ASIMD) is baseline for arm64, so there is nothing to probe.
	currentLevel = DispatchNEON
	currentWidth = 16
	currentName = "neon"
	active = swar128Kernel{}
}
