package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.OS+"/"+info.Architecture)
	assert.Equal(t, ManifestFormatVersion, info.ManifestFormat)
}

func TestGetFullVersionString(t *testing.T) {
	original := GitCommit
	GitCommit = "abc1234"
	defer func() { GitCommit = original }()

	s := GetFullVersionString()

	assert.Contains(t, s, "commit: abc1234")
	assert.Contains(t, s, "go: "+runtime.Version())
}
