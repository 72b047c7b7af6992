package constants

const (
	MagicNumber = "abcrypt"
	MagicSize   = len(MagicNumber)

	VersionV0     = 0
	VersionV1     = 1
	LatestVersion = VersionV1

	SaltSize  = 32
	NonceSize = 24
	TagSize   = 16

	HeaderMacSize = 64
	ParamsSize    = 12
	ContextSize   = 8

	HeaderSizeV0 = MagicSize + 1 + ParamsSize + SaltSize + NonceSize + HeaderMacSize
	HeaderSizeV1 = MagicSize + 1 + ContextSize + ParamsSize + SaltSize + NonceSize + HeaderMacSize
	HeaderSize   = HeaderSizeV1

	// MinContainerSize is checked before the version byte is read, so it
	// always uses the largest header layout.
	MinContainerSize = HeaderSize + TagSize

	EncryptKeySize = 32
	MacKeySize     = 64
	DerivedKeySize = EncryptKeySize + MacKeySize

	Argon2SyncPoints   = 4
	Argon2MinMemory    = 2 * Argon2SyncPoints
	Argon2MinTime      = 1
	Argon2MinLanes     = 1
	Argon2MaxLanes     = 1<<24 - 1
	Argon2BlockSize    = 1024
	Argon2MemoryFactor = 8

	DefaultMemoryCost  = 19 * 1024
	DefaultTimeCost    = 2
	DefaultParallelism = 1
)
