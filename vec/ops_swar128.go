package vec

import "encoding/binary"

// swar128Kernel processes 16 byte lanes per step as two 64-bit words. It
// is the default on amd64 (SSE2 baseline) and arm64 (NEON baseline), where
// the compiler can keep both words in registers.
//
// Per-lane counts accumulate in 8-bit lanes and are flushed into wide
// integers every flushEvery steps, before a lane can reach 256. A scalar
// tail handles the last len(a) mod 16 bytes.
type swar128Kernel struct{}

func (swar128Kernel) Name() string { return "swar128" }
func (swar128Kernel) Width() int   { return 16 }

func (swar128Kernel) PairStats(a, b []byte, indet byte) (sum, length int) {
	n := len(a)
	if len(b) != n {
		panic("vec: PairStats requires len(a) == len(b)")
	}
	gapW := broadcast(Gap)
	indetW := broadcast(indet)

	var sumAcc0, sumAcc1, lenAcc0, lenAcc1 uint64
	steps := 0
	k := 0
	for ; k+16 <= n; k += 16 {
		wa0 := binary.LittleEndian.Uint64(a[k:])
		wb0 := binary.LittleEndian.Uint64(b[k:])
		wa1 := binary.LittleEndian.Uint64(a[k+8:])
		wb1 := binary.LittleEndian.Uint64(b[k+8:])

		gapsi0 := eqMask(wa0, gapW) | eqMask(wa0, indetW)
		gapsj0 := eqMask(wb0, gapW) | eqMask(wb0, indetW)
		eq0 := eqMask(wa0, wb0)
		gapsi1 := eqMask(wa1, gapW) | eqMask(wa1, indetW)
		gapsj1 := eqMask(wb1, gapW) | eqMask(wb1, indetW)
		eq1 := eqMask(wa1, wb1)

		sumAcc0 += (eq0 &^ (gapsi0 | gapsj0)) >> 7
		lenAcc0 += (^(gapsi0 & gapsj0) & laneMSB) >> 7
		sumAcc1 += (eq1 &^ (gapsi1 | gapsj1)) >> 7
		lenAcc1 += (^(gapsi1 & gapsj1) & laneMSB) >> 7

		if steps++; steps == flushEvery {
			sum += sumLanes(sumAcc0) + sumLanes(sumAcc1)
			length += sumLanes(lenAcc0) + sumLanes(lenAcc1)
			sumAcc0, sumAcc1, lenAcc0, lenAcc1 = 0, 0, 0, 0
			steps = 0
		}
	}
	sum += sumLanes(sumAcc0) + sumLanes(sumAcc1)
	length += sumLanes(lenAcc0) + sumLanes(lenAcc1)

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

func (swar128Kernel) MaskedPairStats(a, b, skip []byte, indet byte) (hit, dst int) {
	n := len(a)
	if len(b) != n {
		panic("vec: MaskedPairStats requires len(a) == len(b)")
	}
	if len(skip) < n {
		panic("vec: MaskedPairStats requires len(skip) >= len(a)")
	}
	gapW := broadcast(Gap)
	indetW := broadcast(indet)

	var hitAcc0, hitAcc1, dstAcc0, dstAcc1 uint64
	steps := 0
	k := 0
	for ; k+16 <= n; k += 16 {
		wa0 := binary.LittleEndian.Uint64(a[k:])
		wb0 := binary.LittleEndian.Uint64(b[k:])
		ws0 := binary.LittleEndian.Uint64(skip[k:])
		wa1 := binary.LittleEndian.Uint64(a[k+8:])
		wb1 := binary.LittleEndian.Uint64(b[k+8:])
		ws1 := binary.LittleEndian.Uint64(skip[k+8:])

		gapsi0 := eqMask(wa0, gapW) | eqMask(wa0, indetW)
		gapsj0 := eqMask(wb0, gapW) | eqMask(wb0, indetW)
		mask0 := ^(gapsi0 & gapsj0) & ^ws0 & laneMSB
		gapsi1 := eqMask(wa1, gapW) | eqMask(wa1, indetW)
		gapsj1 := eqMask(wb1, gapW) | eqMask(wb1, indetW)
		mask1 := ^(gapsi1 & gapsj1) & ^ws1 & laneMSB

		dstAcc0 += mask0 >> 7
		hitAcc0 += (eqMask(wa0, wb0) & mask0) >> 7
		dstAcc1 += mask1 >> 7
		hitAcc1 += (eqMask(wa1, wb1) & mask1) >> 7

		if steps++; steps == flushEvery {
			hit += sumLanes(hitAcc0) + sumLanes(hitAcc1)
			dst += sumLanes(dstAcc0) + sumLanes(dstAcc1)
			hitAcc0, hitAcc1, dstAcc0, dstAcc1 = 0, 0, 0, 0
			steps = 0
		}
	}
	hit += sumLanes(hitAcc0) + sumLanes(hitAcc1)
	dst += sumLanes(dstAcc0) + sumLanes(dstAcc1)

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

func (swar128Kernel) AddSupport(hits []byte, a, b []byte, indet byte) {
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
	for ; k+16 <= n; k += 16 {
		wa0 := binary.LittleEndian.Uint64(a[k:])
		wb0 := binary.LittleEndian.Uint64(b[k:])
		wa1 := binary.LittleEndian.Uint64(a[k+8:])
		wb1 := binary.LittleEndian.Uint64(b[k+8:])

		gapsi0 := eqMask(wa0, gapW) | eqMask(wa0, indetW)
		gapsj0 := eqMask(wb0, gapW) | eqMask(wb0, indetW)
		n0 := ((eqMask(wa0, wb0) | (^(gapsi0 | gapsj0) & laneMSB)) & laneMSB) >> 7
		gapsi1 := eqMask(wa1, gapW) | eqMask(wa1, indetW)
		gapsj1 := eqMask(wb1, gapW) | eqMask(wb1, indetW)
		n1 := ((eqMask(wa1, wb1) | (^(gapsi1 | gapsj1) & laneMSB)) & laneMSB) >> 7

		// Byte-wise add; no lane can carry because the caller folds the
		// hits buffer before any lane reaches 255.
		h0 := binary.LittleEndian.Uint64(hits[k:])
		binary.LittleEndian.PutUint64(hits[k:], h0+n0)
		h1 := binary.LittleEndian.Uint64(hits[k+8:])
		binary.LittleEndian.PutUint64(hits[k+8:], h1+n1)
	}

	for ; k < n; k++ {
		nongapi := a[k] != Gap && a[k] != indet
		nongapj := b[k] != Gap && b[k] != indet
		if (nongapi && nongapj) || a[k] == b[k] {
			hits[k]++
		}
	}
}
