package loader

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// jwtSegments strips an optional "Bearer " prefix and splits a compact JWT
// into its three segments.
func jwtSegments(input string) ([]string, bool) {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "Bearer "))
	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return parts, false
	}
	for _, p := range parts {
		if p == "" {
			return parts, false
		}
	}
	return parts, true
}

// decodeSegment base64url-decodes a JWT segment that must hold a JSON object.
func decodeSegment(seg string) (*tree.Node, error) {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return nil, err
	}
	n, err := DecodeJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("JSON: %w", err)
	}
	if n.Kind() != tree.Object {
		n.Release()
		return nil, fmt.Errorf("JSON: %s is not an object", n.Kind())
	}
	return n, nil
}

// IsJWT reports whether input looks like a compact JWT: three non-empty
// base64url segments, the first two holding JSON objects.
func IsJWT(input string) bool {
	parts, ok := jwtSegments(input)
	if !ok {
		return false
	}
	for _, seg := range parts[:2] {
		n, err := decodeSegment(seg)
		if err != nil {
			return false
		}
		n.Release()
	}
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// DecodeJWT decodes a compact JWT into an object with header, payload and
// signature members. The signature stays in its base64url form. Nothing is
// verified.
func DecodeJWT(input string) (*tree.Node, error) {
	parts, ok := jwtSegments(input)
	if !ok {
		return nil, fmt.Errorf("invalid JWT: expected 3 non-empty parts, got %d", len(parts))
	}
	header, err := decodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT header: %w", err)
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		header.Release()
		return nil, fmt.Errorf("invalid JWT payload: %w", err)
	}

	out := tree.NewObject()
	// Fresh nodes into a fresh object: Add cannot fail here.
	_ = out.Add("header", header)
	_ = out.Add("payload", payload)
	_ = out.Add("signature", tree.NewString(parts[2]))
	return out, nil
}

func loadJWT(input string) (*tree.Node, error) {
	return DecodeJWT(input)
}
