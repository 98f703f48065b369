package internal

import (
	"iter"

	"github.com/ezrec/tersim/tryte"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterSpan yields consecutive addresses from base, wrapping at the end of
// the address range, paired with each of the values.
func IterSpan(base tryte.Tryte, values []tryte.Tryte) iter.Seq2[tryte.Tryte, tryte.Tryte] {
	return func(yield func(tryte.Tryte, tryte.Tryte) bool) {
		addr := base
		for _, value := range values {
			if !yield(addr, value) {
				return
			}
			addr = addr.Add(1)
		}
	}
}
