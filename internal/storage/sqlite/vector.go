// ABOUTME: Vector serialization helpers for BLOB storage
// ABOUTME: Encodes float64 vectors as little-endian bytes
package sqlite

import (
	"encoding/binary"
	"math"
)

// vectorToBlob serializes a float64 vector to little-endian bytes.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector deserializes little-endian bytes back into a float64 vector.
func blobToVector(blob []byte) []float64 {
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
