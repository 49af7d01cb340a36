package loader

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/oakwood-commons/kvfold/internal/document"
)

// IsJWT detects if input looks like a JWT token.
// A valid JWT has exactly 3 dot-separated parts where the first two
// are valid base64url-encoded JSON objects.
func IsJWT(input string) bool {
	parts, ok := jwtParts(input)
	if !ok {
		return false
	}

	// First two parts must be valid base64url AND valid JSON objects
	for i := 0; i < 2; i++ {
		if _, err := decodeJWTSegment("segment", parts[i]); err != nil {
			return false
		}
	}

	// Signature just needs to be valid base64url (can contain any bytes)
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// DecodeJWT splits and decodes a JWT token into an object with header,
// payload and signature keys. Header and payload keep the claim order of
// the token.
func DecodeJWT(input string) (*document.Value, error) {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "Bearer "))
	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT: expected 3 parts, got %d", len(parts))
	}

	header, err := decodeJWTSegment("header", parts[0])
	if err != nil {
		return nil, err
	}
	payload, err := decodeJWTSegment("payload", parts[1])
	if err != nil {
		return nil, err
	}

	// Signature is kept as the raw base64url string (not decoded to bytes)
	// since it's binary data that can't be represented as JSON
	return document.NewObject(
		document.Entry{Key: "header", Value: header},
		document.Entry{Key: "payload", Value: payload},
		document.Entry{Key: "signature", Value: document.NewString(parts[2])},
	), nil
}

func jwtParts(input string) ([]string, bool) {
	// Strip common prefixes and whitespace
	input = strings.TrimPrefix(input, "Bearer ")
	input = strings.TrimSpace(input)

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, false
	}
	for _, part := range parts {
		if len(part) == 0 {
			return nil, false
		}
	}
	return parts, true
}

// decodeJWTSegment decodes one base64url segment that must hold a JSON object.
func decodeJWTSegment(name, seg string) (*document.Value, error) {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT %s: %w", name, err)
	}
	v, err := document.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT %s JSON: %w", name, err)
	}
	if v.Kind() != document.Object {
		return nil, fmt.Errorf("invalid JWT %s JSON: expected an object, got %s", name, v.Kind())
	}
	return v, nil
}

// loadJWT parses a JWT string as a single document.
func loadJWT(input string) ([]*document.Value, error) {
	decoded, err := DecodeJWT(input)
	if err != nil {
		return nil, err
	}
	return []*document.Value{decoded}, nil
}
