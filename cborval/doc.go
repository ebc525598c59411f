// Package cborval models decoded CBOR values as a small, explicit
// tagged union (Kind plus payload accessors) instead of interface{},
// so that callers never lose track of which CBOR variant they are
// holding and map entries keep the order they were encoded in.
package cborval
