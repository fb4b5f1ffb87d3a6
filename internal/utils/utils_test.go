package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRoomCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{6}$`)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code := GenerateRoomCode()
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)
}

func TestGenerateCode_Length(t *testing.T) {
	assert.Len(t, GenerateCode(0), 0)
	assert.Len(t, GenerateCode(12), 12)
}
