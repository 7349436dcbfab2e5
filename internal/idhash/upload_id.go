// Package idhash derives deterministic identifiers for uploads.
package idhash

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

// ComputeUploadID computes a deterministic upload identifier.
// Formula: base58(SHA256(filename|payload)). The same file uploaded twice
// maps to the same id, so the archive stays idempotent across re-uploads.
func ComputeUploadID(filename string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(filename))
	h.Write([]byte{'|'})
	h.Write(payload)
	return base58.Encode(h.Sum(nil))
}
