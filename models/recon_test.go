package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction(t *testing.T) {
	tests := []struct {
		action     Action
		arrow      string
		propagates bool
	}{
		{action: LeftToRight, arrow: "---->", propagates: true},
		{action: RightToLeft, arrow: "<----", propagates: true},
		{action: DeleteLeft, arrow: "<-del", propagates: true},
		{action: DeleteRight, arrow: "del->", propagates: true},
		{action: Conflict, arrow: "<-?->", propagates: false},
		{action: Action(0), arrow: "?????", propagates: false},
	}

	for _, tt := range tests {
		t.Run(tt.arrow, func(t *testing.T) {
			assert.Equal(t, tt.arrow, tt.action.String())
			assert.Equal(t, tt.propagates, tt.action.Propagates())
		})
	}
}

func TestSameContent(t *testing.T) {
	a := &FileState{Path: "a.txt", Hash: "aa", Size: 3}

	assert.True(t, SameContent(nil, nil))
	assert.False(t, SameContent(a, nil))
	assert.False(t, SameContent(nil, a))
	assert.True(t, SameContent(a, &FileState{Path: "b.txt", Hash: "aa", Size: 3}))
	assert.False(t, SameContent(a, &FileState{Hash: "bb", Size: 3}))
}

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "", "abc123")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
	assert.Equal(t, "Build version: 1.2.0\nBuild date: N/A\nBuild commit: abc123", info.String())
}
