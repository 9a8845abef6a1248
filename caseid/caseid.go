// Package caseid generates and validates the short case identifiers that
// moderators read over voice and type into lookup commands. IDs are drawn
// from a 32-symbol alphabet that drops 0, 1, I and O so no two characters
// can be confused when read aloud, and they are unique across every guild
// the bot serves, not just one.
package caseid

import (
	"crypto/rand"
	"math"
	"strings"
)

// Alphabet is the phone-friendly character set: digits 2-9 and uppercase
// letters excluding I and O
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// DisplayLength is the standard case ID length
const DisplayLength = 10

// FallbackLength is used when the allocator exhausts its retry budget at the
// standard length
const FallbackLength = 12

// Generate returns a random string of the given length over the alphabet.
// Each character is drawn independently; 256 is an exact multiple of the
// 32-symbol alphabet so the byte-modulo mapping is uniform.
func Generate(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand reading from the OS source does not fail in practice
		panic(err)
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(out)
}

// IsValid reports whether s is a well-formed display case ID: exactly 10
// characters, all from the alphabet, case-insensitive
func IsValid(s string) bool {
	return len(s) == DisplayLength && overAlphabet(s)
}

// IsValidStored reports whether s could be a case ID held in the store: the
// standard length, or the fallback length the allocator mints when the
// standard keyspace runs dry. Lookup and mutation endpoints accept both,
// otherwise a fallback-minted case could never be retrieved again.
func IsValidStored(s string) bool {
	return (len(s) == DisplayLength || len(s) == FallbackLength) && overAlphabet(s)
}

func overAlphabet(s string) bool {
	for _, r := range strings.ToUpper(s) {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Normalize returns the storage form of a case ID. IDs are stored and
// compared uppercase.
func Normalize(s string) string {
	return strings.ToUpper(s)
}

// Format truncates and uppercases an ID for display
func Format(s string) string {
	s = strings.ToUpper(s)
	if len(s) > DisplayLength {
		return s[:DisplayLength]
	}
	return s
}

// TotalCombinations returns the size of the standard-length keyspace,
// 32^10 ≈ 1.1e15
func TotalCombinations() float64 {
	return math.Pow(float64(len(Alphabet)), DisplayLength)
}

// EstimateCollisionProbability approximates the chance that numCases randomly
// generated IDs contain at least one duplicate, via the birthday bound
// 1 - e^(-n(n-1)/2k)
func EstimateCollisionProbability(numCases int) float64 {
	n := float64(numCases)
	return 1 - math.Exp(-(n*(n-1))/(2*TotalCombinations()))
}
