package signature

import (
	"crypto/sha256"
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.dedis.ch/sigvss/types"
	"golang.org/x/xerrors"
)

// DefaultCacheSize is the number of positive verifications remembered when no
// size is configured.
const DefaultCacheSize = 4096

// Link is one signature of a subshare chain.
type Link int

// Chain links, in signing order
const (
	DealerLink Link = iota
	LowerLink
	HigherLink
)

// String implements fmt.Stringer.
func (l Link) String() string {
	switch l {
	case DealerLink:
		return "dealer"
	case LowerLink:
		return "lower"
	case HigherLink:
		return "higher"
	default:
		return "unknown"
	}
}

// ChainKeys are the public keys a subshare chain is verified against.
type ChainKeys struct {
	Dealer PublicKey
	Lower  PublicKey
	Higher PublicKey
}

// Verifier checks signatures and remembers the ones that verified. Only
// positive results are cached: a failure is always recomputed.
type Verifier struct {
	cache *lru.Cache[[sha256.Size]byte, struct{}]
}

// NewVerifier returns a verifier remembering up to size positive results.
func NewVerifier(size int) (*Verifier, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[[sha256.Size]byte, struct{}](size)
	if err != nil {
		return nil, xerrors.Errorf("failed to create verification cache: %w", err)
	}

	return &Verifier{
		cache: cache,
	}, nil
}

// Verify returns true if sig is a signature of msg under pk. A nil key never
// verifies.
func (v *Verifier) Verify(pk PublicKey, msg []byte, sig types.Signature) bool {
	if pk == nil || len(sig) == 0 {
		return false
	}

	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return false
	}

	key := cacheKey(pkBytes, msg, sig)
	if v.cache.Contains(key) {
		return true
	}

	if !pk.Verify(msg, sig) {
		return false
	}

	v.cache.Add(key, struct{}{})
	return true
}

// VerifyChain verifies the links of s from the dealer up to and including
// upto. It returns the first link that does not verify.
func (v *Verifier) VerifyChain(pair types.Pair, s types.Subshare, keys ChainKeys, upto Link) (Link, bool) {
	if s.Value == nil {
		return DealerLink, false
	}

	msg, err := types.SigningMessage(pair, s.Value)
	if err != nil {
		return DealerLink, false
	}

	links := []struct {
		link Link
		pk   PublicKey
		sig  types.Signature
	}{
		{DealerLink, keys.Dealer, s.DealerSignature},
		{LowerLink, keys.Lower, s.LowerSignature},
		{HigherLink, keys.Higher, s.HigherSignature},
	}

	for _, l := range links {
		if l.link > upto {
			break
		}
		if !v.Verify(l.pk, msg, l.sig) {
			return l.link, false
		}
	}

	return upto, true
}

// cacheKey hashes the length-prefixed key, message and signature.
func cacheKey(parts ...[]byte) [sha256.Size]byte {
	h := sha256.New()
	size := make([]byte, 4)

	for _, p := range parts {
		binary.BigEndian.PutUint32(size, uint32(len(p)))
		h.Write(size)
		h.Write(p)
	}

	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
