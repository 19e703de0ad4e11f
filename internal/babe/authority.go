package babe

import "github.com/eigerco/mulberry/internal/crypto"

// Authority is a single block-production authority: a VRF public key and its
// election weight.
type Authority struct {
	Key    crypto.VRFPublicKey
	Weight uint64
}

// AuthoritySet is an ordered sequence of authorities. Two live copies exist
// at all times: the set governing slot claims in the active epoch, and the
// set staged for promotion at the next boundary.
type AuthoritySet []Authority

// Index returns the position of the given key in the set.
func (as AuthoritySet) Index(key crypto.VRFPublicKey) (uint32, bool) {
	for i, a := range as {
		if a.Key == key {
			return uint32(i), true
		}
	}
	return 0, false
}

// TotalWeight sums the weights of all authorities.
func (as AuthoritySet) TotalWeight() uint64 {
	var total uint64
	for _, a := range as {
		total += a.Weight
	}
	return total
}

// Clone returns a deep copy of the set.
func (as AuthoritySet) Clone() AuthoritySet {
	if as == nil {
		return nil
	}
	out := make(AuthoritySet, len(as))
	copy(out, as)
	return out
}
