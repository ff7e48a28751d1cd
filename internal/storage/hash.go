package storage

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// ComputeStoreHash digests the entries and tag-definition files in order.
// Missing files contribute nothing, so an empty store has a stable hash. The
// digest is compared against the value recorded in the SQLite cache to decide
// whether the cache is stale.
func ComputeStoreHash(entriesPath, tagDefsPath string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("creating digest: %w", err)
	}

	for _, path := range []string{entriesPath, tagDefsPath} {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("opening %s: %w", path, err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
