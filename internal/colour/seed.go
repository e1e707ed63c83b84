package colour

import (
	"crypto/sha256"
	"encoding/binary"
)

// seedSamples bounds how many pixels ContentSeed hashes.
const seedSamples = 10000

// ContentSeed derives a deterministic seed from pixel content. The same
// buffer always yields the same seed, regardless of where it was loaded from.
func ContentSeed(pixels PixelBuffer) int64 {
	hasher := sha256.New()

	lenBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(lenBytes, uint64(len(pixels)))
	hasher.Write(lenBytes)

	n := pixels.PixelCount()
	step := max(n/seedSamples, 1)
	for i := 0; i < n; i += step {
		o := i * Channels
		hasher.Write(pixels[o : o+Channels])
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}
