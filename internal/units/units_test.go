package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	testCases := []struct {
		name     string
		got      float64
		expected float64
	}{
		{name: "RSI to R", got: RSIToR(3.5), expected: 19.873921679499997},
		{name: "USI to U", got: USIToU(5.678263337), expected: 1.0},
		{name: "kW to Btu/h", got: KWToBtuh(20), expected: 68242.84},
		{name: "L/s to CFM", got: LpsToCfm(60), expected: 127.13280018},
		{name: "m2 to ft2", got: M2ToFt2(30), expected: 322.9173126},
		{name: "m to ft", got: MToFt(2.4), expected: 7.874015748},
		{name: "L to gal", got: LitersToGallons(180), expected: 47.550969432},
		{name: "COP to SEER", got: CopToSeer(3.8), expected: 12.9661396},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, tc.got, 1e-9)
		})
	}
}

func TestEffectiveAssemblyRSI(t *testing.T) {
	t.Run("adds air films to layer sum", func(t *testing.T) {
		assert.InDelta(t, 3.15, EffectiveAssemblyRSI([]float64{0.5, 2.1, 0.4}), 1e-9)
	})
	t.Run("empty layer list means absent", func(t *testing.T) {
		assert.Zero(t, EffectiveAssemblyRSI(nil))
	})
}

func TestWindowAreaM2(t *testing.T) {
	assert.InDelta(t, 1.08, WindowAreaM2(1200, 900), 1e-9)
}

func TestClamp(t *testing.T) {
	testCases := []struct {
		name    string
		v       float64
		want    float64
		clamped bool
	}{
		{name: "below range", v: -1, want: 0, clamped: true},
		{name: "in range", v: 0.5, want: 0.5, clamped: false},
		{name: "above range", v: 2, want: 1, clamped: true},
		{name: "at boundary", v: 1, want: 1, clamped: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, clamped := Clamp(tc.v, 0, 1)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.clamped, clamped)
		})
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "19.9", String1(19.8739))
	assert.Equal(t, "0.32", String2(0.317))
	assert.Equal(t, "13", String1(12.9661396))
	assert.Equal(t, "1", String2(1.0))
}

func TestOrientation(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		compass string
		azimuth int
		ok      bool
	}{
		{name: "numeric code", in: "1", compass: "north", azimuth: 0, ok: true},
		{name: "name", in: "South", compass: "south", azimuth: 180, ok: true},
		{name: "diagonal code", in: "4", compass: "southeast", azimuth: 135, ok: true},
		{name: "padded name", in: "  West ", compass: "west", azimuth: 270, ok: true},
		{name: "garbage", in: "upwards", ok: false},
		{name: "empty", in: "", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			compass, ok := OrientationName(tc.in)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.compass, compass)
			az, ok := Azimuth(compass)
			assert.True(t, ok)
			assert.Equal(t, tc.azimuth, az)
		})
	}
}
