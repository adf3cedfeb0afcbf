package common

import "github.com/nspcc-dev/neo-go/pkg/interop/util"

var withdrawPrefix = []byte{0x01}

// WithdrawTransferDetails marks a payout transfer of a vested balance.
func WithdrawTransferDetails(symbol string) []byte {
	return append(withdrawPrefix, symbol...)
}

// BytesEqual compares two slice of bytes by wrapping them into strings,
// which is necessary with new util.Equal interop behaviour, see neo-go#1176.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}
