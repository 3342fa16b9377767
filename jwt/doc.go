// Package jwt implements the token codec: RS256 signing and verification of
// access and refresh tokens, each kind bound to its own RSA key pair. Key
// material is parsed once at construction; all verification failures
// collapse into a single error.
package jwt
