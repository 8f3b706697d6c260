package peer

import (
	"go.dedis.ch/sigvss/peer/impl/signature"
	"go.dedis.ch/sigvss/transport/channel"
	"go.dedis.ch/sigvss/types"
)

// Configuration of one protocol run.
type Configuration struct {
	Params types.PublicParameters

	// Scheme signs every subshare. Schnorr is used when nil.
	Scheme signature.Scheme

	// Seed makes the dealer's polynomial deterministic. Crypto randomness is
	// used when empty.
	Seed []byte

	// VerifyCacheSize bounds the memoised signature verifications.
	// Default: signature.DefaultCacheSize
	VerifyCacheSize int

	// Network carries the messages of the runs. It can be shared by several
	// runs: each one only reads and accounts for its own messages. A fresh
	// in-memory network is created when nil.
	Network *channel.Network

	// DealerDegree, when positive, replaces t as the degree of the dealer's
	// polynomial.
	DealerDegree int

	// Forgeries maps a receiver index to the pairs whose subshares it
	// tampers with before forwarding them.
	Forgeries map[int]ForgeryPredicate
}

// ForgeryPredicate selects the pairs a Byzantine receiver forges.
type ForgeryPredicate func(pair types.Pair) bool

// ForgeAll selects every pair.
func ForgeAll(types.Pair) bool {
	return true
}

// ForgePair selects only the canonical pair of a and b.
func ForgePair(a, b int) ForgeryPredicate {
	target := types.NewPair(a, b)
	return func(pair types.Pair) bool {
		return pair == target
	}
}
