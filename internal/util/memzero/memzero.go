package memzero

import "crypto/subtle"

// Zero overwrites b with zeros. subtle.ConstantTimeCopy keeps the write from
// being elided by the compiler.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
