package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the owner of the contract but was not.
	ErrOwnerWitnessFailed = "contract owner witness check failed"
	// ErrIssuerWitnessFailed appears when the method must be called
	// by the issuer of the token but was not.
	ErrIssuerWitnessFailed = "issuer witness check failed"
	// ErrHolderWitnessFailed appears when the method must be called
	// by the holder of some assets but was not.
	ErrHolderWitnessFailed = "holder witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// using certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

// CheckIssuerWitness checks witness of the passed caller.
// It panics with ErrIssuerWitnessFailed message on fail.
func CheckIssuerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrIssuerWitnessFailed)
}

// CheckHolderWitness checks witness of the passed caller.
// It panics with ErrHolderWitnessFailed message on fail.
func CheckHolderWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrHolderWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
