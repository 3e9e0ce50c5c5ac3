// Package keygen derives stable translation keys from text.
package keygen

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/zeebo/xxh3"
)

// DefaultHashLength is the number of hex digits kept from the digest
const DefaultHashLength = 8

// Algorithm names a digest used for key derivation
type Algorithm string

const (
	// MD5 keeps keys compatible with existing manifests
	MD5 Algorithm = "md5"
	// XXH3 is the 64-bit xxh3 hash
	XXH3 Algorithm = "xxh3"
)

// Hasher returns the lowercase hex digest of text
type Hasher interface {
	Sum(text string) string
}

type md5Hasher struct{}

func (md5Hasher) Sum(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

type xxh3Hasher struct{}

func (xxh3Hasher) Sum(text string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(text))
}

// NewHasher returns the hasher for alg. The empty algorithm means MD5.
func NewHasher(alg Algorithm) (Hasher, error) {
	switch alg {
	case MD5, "":
		return md5Hasher{}, nil
	case XXH3:
		return xxh3Hasher{}, nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %q", alg)
}

// Generator derives keys of the form <namespace>_<hash prefix>
type Generator struct {
	Namespace  string
	HashLength int
	Hasher     Hasher
}

// Key returns the base key for text
func (g Generator) Key(text string) string {
	h := g.Hasher
	if h == nil {
		h = md5Hasher{}
	}
	digest := h.Sum(text)
	n := g.HashLength
	if n <= 0 {
		n = DefaultHashLength
	}
	if n > len(digest) {
		n = len(digest)
	}
	return g.Namespace + "_" + digest[:n]
}

// GenerateKey returns namespace + "_" + the first hashLength hex digits of md5(text)
func GenerateKey(text, namespace string, hashLength int) string {
	return Generator{Namespace: namespace, HashLength: hashLength}.Key(text)
}

// Registry assigns keys for one batch of texts, suffixing keys that
// collide with a different text. It is not safe for concurrent use.
type Registry struct {
	gen    Generator
	byKey  map[string]string
	byText map[string]string
}

// NewRegistry creates an empty registry
func NewRegistry(gen Generator) *Registry {
	return &Registry{
		gen:    gen,
		byKey:  map[string]string{},
		byText: map[string]string{},
	}
}

// Namespace returns the namespace keys are prefixed with
func (r *Registry) Namespace() string {
	return r.gen.Namespace
}

// Assign returns the key for text, reusing the key of an identical earlier text.
// When the base key already belongs to a different text the first free
// base_<n>, n = 1, 2, ..., is used.
func (r *Registry) Assign(text string) string {
	if key, ok := r.byText[text]; ok {
		return key
	}
	base := r.gen.Key(text)
	key := base
	for n := 1; ; n++ {
		if _, taken := r.byKey[key]; !taken {
			break
		}
		key = base + "_" + strconv.Itoa(n)
	}
	r.byKey[key] = text
	r.byText[text] = key
	return key
}

// Len returns the number of distinct texts assigned
func (r *Registry) Len() int {
	return len(r.byText)
}
