package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-racer/config"
)

func TestGenerateChainsSegments(t *testing.T) {
	segs, err := generate(config.DefaultTrack(), 30)
	require.NoError(t, err)
	require.Len(t, segs, 30)
	for i := 1; i < len(segs); i++ {
		assert.Equal(t, i, segs[i].Index)
		assert.Equal(t, segs[i-1].EndPosition, segs[i].StartPosition)
	}

	_, err = generate(config.DefaultTrack(), 0)
	assert.Error(t, err)

	bad := config.DefaultTrack()
	bad.SegmentLength = -1
	_, err = generate(bad, 5)
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	segs, err := generate(config.DefaultTrack(), 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, segs))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "type")
	assert.Contains(t, lines[1], "straight")
}
