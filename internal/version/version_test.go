package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}

func TestStringIncludesVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	s := String()
	assert.True(t, strings.HasPrefix(s, "fiscalsim v9.9.9 (commit "), s)
	assert.Contains(t, s, "built "+BuildTime)
}
