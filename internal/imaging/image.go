// Package imaging normalizes product image input into one stored string and
// projects that string into a renderable form for clients.
package imaging

import (
	"encoding/base64"
	"strings"
)

// Placeholder is the inline SVG shown when no usable image exists.
const Placeholder = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='300' height='300' viewBox='0 0 300 300'%3E%3Crect width='100%25' height='100%25' fill='%23f0f0f0'/%3E%3Ctext x='50%25' y='50%25' dominant-baseline='middle' text-anchor='middle' font-family='Arial' font-size='14' fill='%23666666'%3ENo Image Available%3C/text%3E%3C/svg%3E"

const unsplashParams = "?w=800&q=80&auto=format&fit=crop"

type Kind int

const (
	// None means the product has no image reference.
	None Kind = iota
	// Remote is an http(s) URL stored verbatim.
	Remote
	// Inline is raw base64-encoded image bytes.
	Inline
	// DataURL is an already-embedded data: URL.
	DataURL
)

// Ref is the tagged form of the single stored image string. The flat string
// representation exists only at the persistence boundary; everything else
// works on the variant.
type Ref struct {
	kind  Kind
	value string
}

func (r Ref) Kind() Kind { return r.kind }

// FromURLs keeps the first URL of a caller-supplied list verbatim.
// An empty list yields None.
func FromURLs(urls []string) Ref {
	for _, u := range urls {
		if u != "" {
			return Ref{kind: Remote, value: u}
		}
	}
	return Ref{}
}

// FromUpload base64-encodes uploaded bytes into an inline reference.
func FromUpload(content []byte) Ref {
	if len(content) == 0 {
		return Ref{}
	}
	return Ref{kind: Inline, value: base64.StdEncoding.EncodeToString(content)}
}

// ParseStored classifies a stored image string by prefix.
func ParseStored(s string) Ref {
	switch {
	case s == "":
		return Ref{}
	case strings.HasPrefix(s, "data:"):
		return Ref{kind: DataURL, value: s}
	case strings.HasPrefix(s, "http"):
		return Ref{kind: Remote, value: s}
	default:
		return Ref{kind: Inline, value: s}
	}
}

// Stored returns the flat string persisted on the product row.
func (r Ref) Stored() string { return r.value }

// Display projects the reference into a renderable value. Pure: no I/O, the
// same reference always yields the same result.
func (r Ref) Display() string {
	switch r.kind {
	case Remote:
		// Unsplash images get fixed optimization parameters, but only when
		// the URL carries no query string yet.
		if strings.Contains(r.value, "images.unsplash.com") && !strings.Contains(r.value, "?") {
			return r.value + unsplashParams
		}
		return r.value
	case DataURL:
		return r.value
	case Inline:
		if _, err := base64.StdEncoding.DecodeString(r.value); err != nil {
			return Placeholder
		}
		return "data:image/jpeg;base64," + r.value
	default:
		return Placeholder
	}
}
