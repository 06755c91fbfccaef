package utils

import (
	"encoding/hex"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// checksumPool holds reusable unkeyed BLAKE2b-256 hashers.
var checksumPool = sync.Pool{
	New: func() any {
		// New256 fails only for keys longer than 64 bytes.
		h, _ := blake2b.New256(nil)
		return h
	},
}

// AssetChecksum returns the hex-encoded BLAKE2b-256 digest of data.
//
// It is attached to every uploaded photo asset and verified again after
// download, so a truncated or corrupted asset is never written to disk.
//
// Example usage:
//
//	sum := utils.AssetChecksum(jpegBytes)
func AssetChecksum(data []byte) string {
	h := checksumPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	checksumPool.Put(h)

	return hex.EncodeToString(sum)
}

// VerifyAssetChecksum reports whether checksum matches the digest of data.
func VerifyAssetChecksum(data []byte, checksum string) bool {
	return AssetChecksum(data) == checksum
}
