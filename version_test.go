package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(c string) { GitCommit = c }(GitCommit)

	GitCommit = ""
	assert.Equal(t, "v"+version, Version())

	GitCommit = "12345678"
	assert.Equal(t, "v"+version+" 12345678", Version())

	assert.Equal(t, version, RunningVersion().String())
}
