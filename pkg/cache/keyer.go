package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion changes whenever rendering output changes for the same input,
// so stale artifacts are never served after an upgrade.
const keyVersion = 1

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a diagram.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the document that affects an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Boxes    bool    `json:"boxes,omitempty"`
	Measurer string  `json:"measurer,omitempty"`
	Title    string  `json:"title,omitempty"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	// Encoding a fixed struct cannot fail.
	_ = json.NewEncoder(h).Encode(struct {
		Version int             `json:"v"`
		Doc     string          `json:"doc"`
		Opts    ArtifactKeyOpts `json:"opts"`
	}{keyVersion, docHash, opts})
	return "artifact:" + hex.EncodeToString(h.Sum(nil))
}

// ScopedKeyer prefixes every key of an inner Keyer so several deployments
// can share one backend:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve")
//	keyer.ArtifactKey(h, opts) // "serve:artifact:..."
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil. A
// prefix without a trailing colon gets one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix != "" && prefix[len(prefix)-1] != ':' {
		prefix += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// Hash returns the hex SHA-256 of a diagram source.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
