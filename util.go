package textio

import "golang.org/x/exp/constraints"

// Roundup rounds n up to the nearest multiple of align. align must be a
// power of two. Used to keep the staging buffer capacity aligned.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }
