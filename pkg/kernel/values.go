package kernel

import "strings"

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// IsValid does a shallow shape check; full validation belongs to the
// mail provider.
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

type Phone string

func (p Phone) String() string { return string(p) }
func (p Phone) IsEmpty() bool  { return string(p) == "" }

// ProfileEmbedding is a dense vector representation of a candidate profile.
type ProfileEmbedding []float32

// BucketURL is a storage path inside the configured object bucket.
type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }
