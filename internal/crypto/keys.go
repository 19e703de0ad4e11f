package crypto

// VRFPublicKey is a compressed edwards25519 point identifying a block author.
type VRFPublicKey [PublicKeySize]byte

// VRFOutput is the pseudorandom output of a VRF evaluation. It is the value
// folded into the randomness accumulator and compared against the primary
// claim threshold.
type VRFOutput [VRFOutputSize]byte

// VRFProof is an ECVRF proof: gamma (32 bytes), challenge (16 bytes),
// response scalar (32 bytes).
type VRFProof [VRFProofSize]byte
