//go:build lrudebug
// +build lrudebug

package lru

// checkInvariants turns on internal consistency checks around every
// public operation.
const checkInvariants = true
