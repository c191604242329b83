package abuse

import (
	"encoding/hex"

	"ticket-allocator/internal/pkg/errs"

	"golang.org/x/crypto/blake2b"
)

// IPHasher turns client IPs into keyed digests so raw addresses are never stored.
type IPHasher struct {
	key []byte
}

func NewIPHasher(key string) (*IPHasher, error) {
	if len(key) > blake2b.Size {
		return nil, errs.Newf("ip hash key longer than %d bytes", blake2b.Size)
	}
	return &IPHasher{key: []byte(key)}, nil
}

func (h *IPHasher) Key(clientIP string) string {
	if clientIP == "" {
		return ""
	}
	// New only fails for keys longer than 64 bytes, rejected above.
	mac, _ := blake2b.New(16, h.key)
	mac.Write([]byte(clientIP))
	return hex.EncodeToString(mac.Sum(nil))
}
