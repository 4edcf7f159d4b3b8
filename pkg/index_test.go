package reco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBuildHitIndex(t *testing.T) {
	hits := []HitRecord{
		{EventID: 2, DeviceID: 1},
		{EventID: 1, DeviceID: 2},
		{EventID: 2, DeviceID: 3},
	}
	index := BuildHitIndex(hits)

	assert.Len(t, index, 2)
	assert.Equal(t, []HitRecord{{EventID: 2, DeviceID: 1}, {EventID: 2, DeviceID: 3}}, index[2])
	assert.Empty(t, index[5])
}

func TestTruthJoin(t *testing.T) {
	truth := BuildTruthIndex([]TruthRecord{
		{EventID: 1, Momentum: r3.Vec{X: 3, Y: 4}, Vertex: r3.Vec{Z: 100}},
		{EventID: 1, Momentum: r3.Vec{X: 6, Y: 8}, Vertex: r3.Vec{Z: 50}},
		{EventID: 2, Momentum: r3.Vec{Z: 2}},
	})

	p, vertex, ok := truth.Join(1)
	assert.True(t, ok)
	assert.Equal(t, 5.0, p)
	assert.Equal(t, r3.Vec{Z: 100}, vertex)

	p, vertex, ok = truth.Join(3)
	assert.False(t, ok)
	assert.Zero(t, p)
	assert.Equal(t, r3.Vec{}, vertex)
}
