package vec

import "encoding/binary"

// swar256Kernel processes 32 byte lanes per step as four 64-bit words.
// It is selected on amd64 when AVX2 is available: the wider unrolled body
// gives the compiler and the load pipes more independent work per
// iteration. Counting semantics and flush discipline are identical to
// swar128Kernel, and parity with the scalar reference is exact.
type swar256Kernel struct{}

func (swar256Kernel) Name() string { return "swar256" }
func (swar256Kernel) Width() int   { return 32 }

func (swar256Kernel) PairStats(a, b []byte, indet byte) (sum, length int) {
	n := len(a)
	if len(b) != n {
		panic("vec: PairStats requires len(a) == len(b)")
	}
	gapW := broadcast(Gap)
	indetW := broadcast(indet)

	var sumAcc [4]uint64
	var lenAcc [4]uint64
	steps := 0
	k := 0
	for ; k+32 <= n; k += 32 {
		for w := 0; w < 4; w++ {
			wa := binary.LittleEndian.Uint64(a[k+8*w:])
			wb := binary.LittleEndian.Uint64(b[k+8*w:])
			gapsi := eqMask(wa, gapW) | eqMask(wa, indetW)
			gapsj := eqMask(wb, gapW) | eqMask(wb, indetW)
			sumAcc[w] += (eqMask(wa, wb) &^ (gapsi | gapsj)) >> 7
			lenAcc[w] += (^(gapsi & gapsj) & laneMSB) >> 7
		}
		if steps++; steps == flushEvery {
			for w := 0; w < 4; w++ {
				sum += sumLanes(sumAcc[w])
				length += sumLanes(lenAcc[w])
				sumAcc[w], lenAcc[w] = 0, 0
			}
			steps = 0
		}
	}
	for w := 0; w < 4; w++ {
		sum += sumLanes(sumAcc[w])
		length += sumLanes(lenAcc[w])
	}

	for ; k < n; k++ {
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

func (swar256Kernel) MaskedPairStats(a, b, skip []byte, indet byte) (hit, dst int) {
	n := len(a)
	if len(b) != n {
		panic("vec: MaskedPairStats requires len(a) == len(b)")
	}
	if len(skip) < n {
		panic("vec: MaskedPairStats requires len(skip) >= len(a)")
	}
	gapW := broadcast(Gap)
	indetW := broadcast(indet)

	var hitAcc [4]uint64
	var dstAcc [4]uint64
	steps := 0
	k := 0
	for ; k+32 <= n; k += 32 {
		for w := 0; w < 4; w++ {
			wa := binary.LittleEndian.Uint64(a[k+8*w:])
			wb := binary.LittleEndian.Uint64(b[k+8*w:])
			ws := binary.LittleEndian.Uint64(skip[k+8*w:])
			gapsi := eqMask(wa, gapW) | eqMask(wa, indetW)
			gapsj := eqMask(wb, gapW) | eqMask(wb, indetW)
			mask := ^(gapsi & gapsj) & ^ws & laneMSB
			dstAcc[w] += mask >> 7
			hitAcc[w] += (eqMask(wa, wb) & mask) >> 7
		}
		if steps++; steps == flushEvery {
			for w := 0; w < 4; w++ {
				hit += sumLanes(hitAcc[w])
				dst += sumLanes(dstAcc[w])
				hitAcc[w], dstAcc[w] = 0, 0
			}
			steps = 0
		}
	}
	for w := 0; w < 4; w++ {
		hit += sumLanes(hitAcc[w])
		dst += sumLanes(dstAcc[w])
	}

	for ; k < n; k++ {
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

func (swar256Kernel) AddSupport(hits []byte, a, b []byte, indet byte) {
	n := len(a)
	if len(b) != n {
		panic("vec: AddSupport requires len(a) == len(b)")
	}
	if len(hits) < n {
		panic("vec: AddSupport requires len(hits) >= len(a)")
	}
	gapW := broadcast(Gap)
	indetW := broadcast(indet)

	k := 0
	for ; k+32 <= n; k += 32 {
		for w := 0; w < 4; w++ {
			wa := binary.LittleEndian.Uint64(a[k+8*w:])
			wb := binary.LittleEndian.Uint64(b[k+8*w:])
			gapsi := eqMask(wa, gapW) | eqMask(wa, indetW)
			gapsj := eqMask(wb, gapW) | eqMask(wb, indetW)
			inc := ((eqMask(wa, wb) | (^(gapsi | gapsj) & laneMSB)) & laneMSB) >> 7
			h := binary.LittleEndian.Uint64(hits[k+8*w:])
			binary.LittleEndian.PutUint64(hits[k+8*w:], h+inc)
		}
	}

	for ; k < n; k++ {
		nongapi := a[k] != Gap && a[k] != indet
		nongapj := b[k] != Gap && b[k] != indet
		if (nongapi && nongapj) || a[k] == b[k] {
			hits[k]++
		}
	}
}
