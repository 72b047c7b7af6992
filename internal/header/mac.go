package header

import (
	"golang.org/x/crypto/blake2b"
)

// ComputeMAC returns the keyed BLAKE2b-512 of data. key must be at most 64
// bytes.
func ComputeMAC(key, data []byte) ([]byte, error) {
	h, err := blake2b.New512(key)
	if err != nil {
		return nil, err
	}

	h.Write(data)

	return h.Sum(nil), nil
}

func VerifyMAC(key, data, tag []byte) (bool, error) {
	mac, err := ComputeMAC(key, data)
	if err != nil {
		return false, err
	}

	return equal(mac, tag), nil
}

// equal compares in time that depends only on the lengths.
func equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}

	return diff == 0
}
