package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/mulberry/internal/crypto"
	"github.com/eigerco/mulberry/internal/crypto/vrf"
)

func RandomHash(t *testing.T) crypto.Hash {
	var hash crypto.Hash
	_, err := rand.Read(hash[:])
	require.NoError(t, err)
	return hash
}

func RandomVRFPublicKey(t *testing.T) crypto.VRFPublicKey {
	// A random 32 byte string is almost never a valid curve point; use a
	// real keypair so verification paths exercise point decoding.
	pub, _, err := vrf.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func RandomVRFOutput(t *testing.T) crypto.VRFOutput {
	var out crypto.VRFOutput
	_, err := rand.Read(out[:])
	require.NoError(t, err)
	return out
}

func RandomVRFProof(t *testing.T) crypto.VRFProof {
	var proof crypto.VRFProof
	_, err := rand.Read(proof[:])
	require.NoError(t, err)
	return proof
}

func VRFKeypair(t *testing.T) (crypto.VRFPublicKey, vrf.SecretKey) {
	pub, sk, err := vrf.GenerateKey(nil)
	require.NoError(t, err)
	return pub, sk
}
