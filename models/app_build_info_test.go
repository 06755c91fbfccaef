package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("v1.2.0", "2026-01-10", "abc123")
	assert.Equal(t, "v1.2.0", info.BuildVersion())
	assert.Equal(t, "2026-01-10", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
}

func TestNewAppBuildInfo_MissingValues(t *testing.T) {
	info := NewAppBuildInfo("", "", "abc123")
	assert.Equal(t, NotAvailable, info.BuildVersion())
	assert.Equal(t, NotAvailable, info.BuildDate())
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: abc123", info.String())
}

func TestAppBuildInfo_ZeroValueString(t *testing.T) {
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A", AppBuildInfo{}.String())
}
