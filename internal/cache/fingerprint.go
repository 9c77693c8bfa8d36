package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Descriptor identifies a generation request by its semantic parameters.
// User and session identity are deliberately excluded: identical parameter
// tuples from different users share one cache entry.
type Descriptor struct {
	Topic        string `json:"topic"`
	Tone         string `json:"tone"`
	Audience     string `json:"audience,omitempty"`
	Length       string `json:"length"`
	CallToAction string `json:"call_to_action,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`
}

// Normalize returns a copy with all fields lower-cased and trimmed.
// Optional fields that were never set and fields set to whitespace
// normalize to the same empty string, so they hash identically.
func (d Descriptor) Normalize() Descriptor {
	norm := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return Descriptor{
		Topic:        norm(d.Topic),
		Tone:         norm(d.Tone),
		Audience:     norm(d.Audience),
		Length:       norm(d.Length),
		CallToAction: norm(d.CallToAction),
		TemplateID:   norm(d.TemplateID),
	}
}

// DeriveKey maps a descriptor to its cache fingerprint: the hex SHA-256
// digest of the normalized fields serialized in fixed order. No salts or
// per-process state; the same logical request always produces the same
// key across restarts.
func DeriveKey(d Descriptor) string {
	n := d.Normalize()
	// Unit separator keeps field boundaries unambiguous.
	serialized := strings.Join([]string{
		n.Audience,
		n.CallToAction,
		n.Length,
		n.TemplateID,
		n.Tone,
		n.Topic,
	}, "\x1f")
	sum := sha256.Sum256([]byte(serialized))
	return hex.EncodeToString(sum[:])
}
