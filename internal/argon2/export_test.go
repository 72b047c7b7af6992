package argon2

// DeriveKey exposes the portable implementation, including the secret and
// associated data inputs the public API does not carry.
var DeriveKey = deriveKey
