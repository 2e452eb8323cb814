package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pct(v float64) *float64 { return &v }

func TestBucketFor(t *testing.T) {
	tests := []struct {
		in   *float64
		want Bucket
	}{
		{nil, NoData},
		{pct(math.NaN()), NoData},
		{pct(25), Excellent},
		{pct(10), Excellent},
		{pct(9.99), Good},
		{pct(5), Good},
		{pct(4.999), Moderate},
		{pct(0), Moderate},
		{pct(-0.1), SlightDecline},
		{pct(-5), SlightDecline},
		{pct(-5.01), Decline},
		{pct(-10), Decline},
		{pct(-10.5), Poor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.in), "BucketFor(%v)", tt.in)
	}
}

func TestBucketMonotonic(t *testing.T) {
	prev := BucketFor(pct(-50))
	for x := -50.0; x <= 50; x += 0.25 {
		b := BucketFor(pct(x))
		if b < prev {
			t.Fatalf("bucket decreased at %v: %v < %v", x, b, prev)
		}
		prev = b
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#22c55e", ColorFor(pct(5), false))
	assert.Equal(t, "#84cc16", ColorFor(pct(4.999), false))
	assert.Equal(t, "#16a34a", ColorFor(pct(10), false))
	assert.Equal(t, "#ef4444", ColorFor(pct(-11), true))
	assert.Equal(t, "#d1d5db", ColorFor(nil, false))
	assert.Equal(t, "#374151", ColorFor(nil, true))
}

func TestAdjustBrightness(t *testing.T) {
	assert.Equal(t, "#666666", AdjustBrightness("#000000", 40))
	assert.Equal(t, "#ffffff", AdjustBrightness("#ffffff", 40))
	assert.Equal(t, "#000000", AdjustBrightness("#101010", -40))
	// 2.55*35 = 89.25 -> 89
	assert.Equal(t, "#6ffca3", AdjustBrightness("#16a34a", 35))
	assert.Equal(t, "not-a-color", AdjustBrightness("not-a-color", 20))
}

func TestOpacityFor(t *testing.T) {
	assert.Equal(t, 0.4, OpacityFor(0, 100))
	assert.Equal(t, 1.0, OpacityFor(100, 100))
	assert.Equal(t, 0.4, OpacityFor(50, 0))
	assert.InDelta(t, 0.7, OpacityFor(50, 100), 1e-9)
	assert.Equal(t, 1.0, OpacityFor(150, 100))
}

func TestLegend(t *testing.T) {
	light := Legend(false)
	dark := Legend(true)
	if assert.Len(t, light, 6) {
		assert.Equal(t, "Excellent (>10%)", light[0].Label)
		assert.Equal(t, "#16a34a", light[0].Color)
		assert.Equal(t, "Poor (<-10%)", light[5].Label)
		assert.Equal(t, "#ef4444", dark[5].Color)
	}
}
