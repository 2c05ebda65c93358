// Package goid reports the identity of the calling goroutine.
//
// Go deliberately hides goroutine identity, so the id is read from the first
// line of the goroutine's own stack trace ("goroutine 123 [running]:"). This
// costs a stack capture per call and should stay off hot paths that do not
// need per-goroutine state.
package goid

import "runtime"

const prefix = "goroutine "

// Current returns the id of the calling goroutine. Ids are positive and never
// reused during the life of the process.
func Current() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return Parse(buf[:n])
}

// Parse extracts the goroutine id from the start of a stack trace. It returns
// 0 if buf does not begin with a goroutine header.
func Parse(buf []byte) int64 {
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
