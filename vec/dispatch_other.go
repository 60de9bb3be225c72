//go:build !amd64 && !arm64

package vec

func init() {
	// Other architectures fall back to the scalar reference for now.
	// The wide kernels are still compiled and pass the parity tests
	// everywhere; only the default selection is conservative here.
	setScalarMode()
}
