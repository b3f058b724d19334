//go:build !lrudebug
// +build !lrudebug

package lru

// checkInvariants is off in regular builds. Build with -tags lrudebug to
// enable the internal consistency checks.
const checkInvariants = false
