// Package nsec3 computes NSEC3 owner name hashes and the cache keys of precomputed hash tables.
package nsec3

import (
	"crypto/sha1" //nolint:gosec
	"encoding/base32"
	"encoding/hex"
	"strings"

	"github.com/miekg/dns"
)

// DigestLen is the length of a SHA-1 digest
const DigestLen = sha1.Size

// HashLen is the length of an encoded hash
const HashLen = 32

// MaxWireIterations is the largest iteration count an NSEC3 record can carry
const MaxWireIterations = 1<<16 - 1

// nolint:gochecknoglobals
var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// HashFunc computes the hash of a fully-qualified name
type HashFunc func(fqdn string, salt []byte, iterations uint32) string

// Digest returns the raw iterated digest of the lower-cased fqdn:
// SHA-1(fqdn ‖ salt) followed by `iterations` rounds of SHA-1(digest ‖ salt).
func Digest(fqdn string, salt []byte, iterations uint32) [DigestLen]byte {
	buf := make([]byte, 0, len(fqdn)+len(salt))
	buf = append(buf, strings.ToLower(fqdn)...)
	buf = append(buf, salt...)

	digest := sha1.Sum(buf) //nolint:gosec

	round := make([]byte, DigestLen+len(salt))
	copy(round[DigestLen:], salt)

	for i := uint32(0); i < iterations; i++ {
		copy(round, digest[:])
		digest = sha1.Sum(round) //nolint:gosec
	}

	return digest
}

// Encode renders a digest as lower case RFC 4648 base-32 without padding
func Encode(digest [DigestLen]byte) string {
	return strings.ToLower(encoding.EncodeToString(digest[:]))
}

// Hash returns the encoded digest of fqdn. It hashes the plain text form of
// the name, not the DNS wire format.
func Hash(fqdn string, salt []byte, iterations uint32) string {
	return Encode(Digest(fqdn, salt, iterations))
}

// WireHash hashes the canonical wire format of fqdn as RFC 5155 specifies and
// returns lower case base32hex. Iterations above MaxWireIterations are capped.
func WireHash(fqdn string, salt []byte, iterations uint32) string {
	if iterations > MaxWireIterations {
		iterations = MaxWireIterations
	}

	return strings.ToLower(dns.HashName(dns.Fqdn(fqdn), dns.SHA1, uint16(iterations), hex.EncodeToString(salt)))
}
