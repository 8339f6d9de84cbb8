package utils

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ==================== BOOKING REFERENCE ====================

const (
	ReferencePrefix = "PMT"
	referenceChars  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceSuffix = 4
)

// GenerateReference returns a booking reference PMT-YYYYMMDD-XXXX where XXXX
// is four random uppercase base36 characters and the date is taken in UTC.
// Uniqueness is enforced by the store, callers retry on conflict.
func GenerateReference(t time.Time) string {
	var b strings.Builder
	b.Grow(len(ReferencePrefix) + 1 + 8 + 1 + referenceSuffix)
	b.WriteString(ReferencePrefix)
	b.WriteByte('-')
	b.WriteString(t.UTC().Format("20060102"))
	b.WriteByte('-')
	for i := 0; i < referenceSuffix; i++ {
		b.WriteByte(referenceChars[rand.IntN(len(referenceChars))])
	}
	return b.String()
}

// NormalizeReference trims and uppercases user input before lookup.
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// ==================== PASSWORD ====================

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ==================== QUERY PARAMS ====================

// ParseInt converts a positive integer string, falling back to defaultValue.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// ParseOptionalInt64 returns nil for an empty or malformed value.
func ParseOptionalInt64(value string) *int64 {
	if value == "" {
		return nil
	}
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &result
}

// ParseOptionalBool returns nil for an empty or malformed value.
func ParseOptionalBool(value string) *bool {
	if value == "" {
		return nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &result
}
