package vec

// This file provides the scalar reference kernel. Its loops define the
// exact semantics every wide kernel must reproduce; the parity tests in
// parity_test.go hold the wide kernels to bit-identical results.

type scalarKernel struct{}

func (scalarKernel) Name() string { return "scalar" }
func (scalarKernel) Width() int   { return 1 }

func (scalarKernel) PairStats(a, b []byte, indet byte) (sum, length int) {
	if len(a) != len(b) {
		panic("vec: PairStats requires len(a) == len(b)")
	}
	for k := range a {
		gapi := a[k] == Gap || a[k] == indet
		gapj := b[k] == Gap || b[k] == indet
		if !gapi || !gapj {
			length++
		}
		if !gapi && !gapj && a[k] == b[k] {
			sum++
		}
	}
	return sum, length
}

func (scalarKernel) MaskedPairStats(a, b, skip []byte, indet byte) (hit, dst int) {
	if len(a) != len(b) {
		panic("vec: MaskedPairStats requires len(a) == len(b)")
	}
	if len(skip) < len(a) {
		panic("vec: MaskedPairStats requires len(skip) >= len(a)")
	}
	for k := range a {
		if skip[k] != 0 {
			continue
		}
		gapi := a[k] == Gap || a[k] == indet
		gapj := b[k] == Gap || b[k] == indet
		if gapi && gapj {
			continue
		}
		dst++
		if a[k] == b[k] {
			hit++
		}
	}
	return hit, dst
}

func (scalarKernel) AddSupport(hits []byte, a, b []byte, indet byte) {
	if len(a) != len(b) {
		panic("vec: AddSupport requires len(a) == len(b)")
	}
	if len(hits) < len(a) {
		panic("vec: AddSupport requires len(hits) >= len(a)")
	}
	for k := range a {
		nongapi := a[k] != Gap && a[k] != indet
		nongapj := b[k] != Gap && b[k] != indet
		if (nongapi && nongapj) || a[k] == b[k] {
			hits[k]++
		}
	}
}
