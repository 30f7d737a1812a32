package learning

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint(SourceGenerated, "Use retry with backoff", "reduces flaky network failures")
	b := Fingerprint(SourceGenerated, "Use retry with backoff", "reduces flaky network failures")
	assert.Equal(t, a, b)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), a)
}

func TestFingerprintSensitiveToEachField(t *testing.T) {
	base := Fingerprint(SourceGenerated, "title", "details")
	assert.NotEqual(t, base, Fingerprint(SourceManual, "title", "details"))
	assert.NotEqual(t, base, Fingerprint(SourceGenerated, "other", "details"))
	assert.NotEqual(t, base, Fingerprint(SourceGenerated, "title", "other"))
}
