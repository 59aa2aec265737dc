package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PIILevel controls how much citizen text reaches logs and spans.
type PIILevel string

const (
	// PIILevelNone redacts citizen text entirely
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected identifiers with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull logs text unchanged
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel maps a config value to a level, defaulting to hashed.
func ParsePIILevel(raw string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(raw))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

// Sanitizer masks personal identifiers citizens commonly type into grievances.
type Sanitizer struct {
	level PIILevel
	salt  string

	emailPattern   *regexp.Regexp
	aadhaarPattern *regexp.Regexp
	mobilePattern  *regexp.Regexp
	ipv4Pattern    *regexp.Regexp
}

// NewSanitizer creates a sanitizer; salt keeps hashes stable per deployment.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level:          level,
		salt:           salt,
		emailPattern:   regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		aadhaarPattern: regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
		mobilePattern:  regexp.MustCompile(`(?:\+91[\s-]?|\b0?)[6-9]\d{4}[\s-]?\d{5}\b`),
		ipv4Pattern:    regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
	}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeText applies the configured level to free text.
func (s *Sanitizer) SanitizeText(input string) string {
	if s == nil {
		return input
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return input
	default:
		return s.hashPII(input)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := s.emailPattern.ReplaceAllStringFunc(input, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})

	// Aadhaar runs before the mobile pattern so 12-digit ids are not split.
	result = s.aadhaarPattern.ReplaceAllString(result, "[AADHAAR:REDACTED]")

	result = s.mobilePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})

	result = s.ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})

	return result
}

func (s *Sanitizer) hash(data string) string {
	h := sha256.New()
	h.Write([]byte(data + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:8]
}

// SanitizeID masks an opaque identifier such as a session id.
func (s *Sanitizer) SanitizeID(id string) string {
	if s == nil || id == "" {
		return id
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return id
	default:
		return s.hash(id)
	}
}
