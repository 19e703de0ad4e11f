package crypto

const (
	HashSize      = 32
	PublicKeySize = 32
	SeedSize      = 32
	VRFOutputSize = 32
	VRFProofSize  = 80
)
