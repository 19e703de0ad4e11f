// Package vrf implements the ECVRF-EDWARDS25519-SHA512-TAI ciphersuite from
// RFC 9381. Proofs are 80 bytes (gamma, 16 byte challenge, response scalar)
// and outputs are the first 32 bytes of the RFC proof-to-hash value.
package vrf

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"filippo.io/edwards25519"

	"github.com/eigerco/mulberry/internal/crypto"
)

const (
	suiteID byte = 0x03

	domainEncodeToCurve byte = 0x01
	domainChallenge     byte = 0x02
	domainProofToHash   byte = 0x03

	challengeSize = 16
)

var (
	ErrInvalidPublicKey = errors.New("vrf: invalid public key")
	ErrInvalidProof     = errors.New("vrf: malformed proof")
	ErrEncodeToCurve    = errors.New("vrf: unable to encode input to curve point")
)

// SecretKey is a 32 byte seed, expanded the same way as an ed25519 private
// key seed.
type SecretKey [crypto.SeedSize]byte

// GenerateKey creates a new VRF keypair. If rng is nil crypto/rand is used.
func GenerateKey(rng io.Reader) (crypto.VRFPublicKey, SecretKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var sk SecretKey
	if _, err := io.ReadFull(rng, sk[:]); err != nil {
		return crypto.VRFPublicKey{}, SecretKey{}, err
	}
	pub, err := sk.Public()
	if err != nil {
		return crypto.VRFPublicKey{}, SecretKey{}, err
	}
	return pub, sk, nil
}

// Public derives the public key for the seed.
func (sk SecretKey) Public() (crypto.VRFPublicKey, error) {
	x, _, err := sk.expand()
	if err != nil {
		return crypto.VRFPublicKey{}, err
	}
	point := new(edwards25519.Point).ScalarBaseMult(x)
	var pub crypto.VRFPublicKey
	copy(pub[:], point.Bytes())
	return pub, nil
}

// expand derives the secret scalar and the nonce-derivation prefix from the
// seed, per RFC 8032 section 5.1.5.
func (sk SecretKey) expand() (*edwards25519.Scalar, []byte, error) {
	h := sha512.Sum512(sk[:])
	x, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, nil, err
	}
	return x, h[32:], nil
}

// Prove evaluates the VRF for the given input, returning the pseudorandom
// output together with the proof that Verify checks against the public key.
func (sk SecretKey) Prove(alpha []byte) (crypto.VRFOutput, crypto.VRFProof, error) {
	x, noncePrefix, err := sk.expand()
	if err != nil {
		return crypto.VRFOutput{}, crypto.VRFProof{}, err
	}
	publicPoint := new(edwards25519.Point).ScalarBaseMult(x)
	publicBytes := publicPoint.Bytes()

	hPoint, err := encodeToCurve(publicBytes, alpha)
	if err != nil {
		return crypto.VRFOutput{}, crypto.VRFProof{}, err
	}
	hBytes := hPoint.Bytes()

	gamma := new(edwards25519.Point).ScalarMult(x, hPoint)

	// Deterministic nonce, RFC 8032 style: k = SHA-512(prefix || H) mod L.
	nonceDigest := sha512.New()
	nonceDigest.Write(noncePrefix)
	nonceDigest.Write(hBytes)
	k, err := edwards25519.NewScalar().SetUniformBytes(nonceDigest.Sum(nil))
	if err != nil {
		return crypto.VRFOutput{}, crypto.VRFProof{}, err
	}

	kB := new(edwards25519.Point).ScalarBaseMult(k)
	kH := new(edwards25519.Point).ScalarMult(k, hPoint)

	c := challenge(publicBytes, hBytes, gamma.Bytes(), kB.Bytes(), kH.Bytes())

	// s = c*x + k mod L
	s := edwards25519.NewScalar().MultiplyAdd(c, x, k)

	var proof crypto.VRFProof
	copy(proof[:32], gamma.Bytes())
	copy(proof[32:32+challengeSize], c.Bytes()[:challengeSize])
	copy(proof[32+challengeSize:], s.Bytes())

	return proofToHash(gamma), proof, nil
}

// Verify checks the proof against the public key and input. On success it
// returns the VRF output bound to the proof.
func Verify(pub crypto.VRFPublicKey, alpha []byte, proof crypto.VRFProof) (crypto.VRFOutput, error) {
	publicPoint, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return crypto.VRFOutput{}, ErrInvalidPublicKey
	}

	gamma, err := new(edwards25519.Point).SetBytes(proof[:32])
	if err != nil {
		return crypto.VRFOutput{}, ErrInvalidProof
	}

	var cBytes [32]byte
	copy(cBytes[:challengeSize], proof[32:32+challengeSize])
	c, err := edwards25519.NewScalar().SetCanonicalBytes(cBytes[:])
	if err != nil {
		return crypto.VRFOutput{}, ErrInvalidProof
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(proof[32+challengeSize:])
	if err != nil {
		return crypto.VRFOutput{}, ErrInvalidProof
	}

	hPoint, err := encodeToCurve(pub[:], alpha)
	if err != nil {
		return crypto.VRFOutput{}, err
	}

	// U = s*B - c*Y, V = s*H - c*Gamma
	u := new(edwards25519.Point).Subtract(
		new(edwards25519.Point).ScalarBaseMult(s),
		new(edwards25519.Point).ScalarMult(c, publicPoint),
	)
	v := new(edwards25519.Point).Subtract(
		new(edwards25519.Point).ScalarMult(s, hPoint),
		new(edwards25519.Point).ScalarMult(c, gamma),
	)

	expected := challenge(pub[:], hPoint.Bytes(), gamma.Bytes(), u.Bytes(), v.Bytes())
	if expected.Equal(c) != 1 {
		return crypto.VRFOutput{}, ErrInvalidProof
	}

	return proofToHash(gamma), nil
}

// encodeToCurve implements ECVRF_encode_to_curve_try_and_increment: hash the
// input with an incrementing counter until the digest decodes as a curve
// point, then clear the cofactor.
func encodeToCurve(publicBytes, alpha []byte) (*edwards25519.Point, error) {
	for ctr := 0; ctr <= 255; ctr++ {
		digest := sha512.New()
		digest.Write([]byte{suiteID, domainEncodeToCurve})
		digest.Write(publicBytes)
		digest.Write(alpha)
		digest.Write([]byte{byte(ctr), 0x00})
		candidate := digest.Sum(nil)[:32]

		point, err := new(edwards25519.Point).SetBytes(candidate)
		if err != nil {
			continue
		}
		return point.MultByCofactor(point), nil
	}
	return nil, ErrEncodeToCurve
}

// challenge implements ECVRF_challenge_generation over the five points,
// truncating the digest to 16 bytes and lifting it to a scalar.
func challenge(points ...[]byte) *edwards25519.Scalar {
	digest := sha512.New()
	digest.Write([]byte{suiteID, domainChallenge})
	for _, p := range points {
		digest.Write(p)
	}
	digest.Write([]byte{0x00})

	var cBytes [32]byte
	copy(cBytes[:challengeSize], digest.Sum(nil)[:challengeSize])
	// Cannot fail: the value is below 2^128, well under the group order.
	c, err := edwards25519.NewScalar().SetCanonicalBytes(cBytes[:])
	if err != nil {
		panic(err)
	}
	return c
}

// proofToHash implements ECVRF_proof_to_hash, truncated to 32 bytes.
func proofToHash(gamma *edwards25519.Point) crypto.VRFOutput {
	cleared := new(edwards25519.Point).MultByCofactor(gamma)
	digest := sha512.New()
	digest.Write([]byte{suiteID, domainProofToHash})
	digest.Write(cleared.Bytes())
	digest.Write([]byte{0x00})

	var out crypto.VRFOutput
	copy(out[:], digest.Sum(nil)[:crypto.VRFOutputSize])
	return out
}
