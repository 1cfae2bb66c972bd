package util

import (
	"iter"
)

func ConcatIter[A any](iters ...iter.Seq[A]) iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, thisIter := range iters {
			for v := range thisIter {
				if !yield(v) {
					return
				}
			}
		}
	}
}

func MapIter[A, B any](it iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range it {
			if !yield(f(v)) {
				return
			}
		}
	}
}
