package jdxi

// Checksum is the Roland checksum over the address and data bytes: the
// value that brings the 7-bit sum of everything to zero.
func Checksum(spans ...[]byte) byte {
	sum := 0
	for _, span := range spans {
		for _, b := range span {
			sum += int(b)
		}
	}
	return byte((128 - sum%128) % 128)
}
