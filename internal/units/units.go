// Package units converts H2K metric values into the domains HPXML expects
// and computes derived engineering quantities. Every function is pure and
// deterministic: the same inputs always produce the same outputs, which the
// golden-file regression tests depend on.
package units

import "math"

// Conversion factors between SI and the imperial units HPXML uses.
const (
	rsiToRFactor   = 5.678263337 // m²·K/W to hr·ft²·°F/Btu
	kwToBtuhFactor = 3412.142    // kW to Btu/hr
	lpsToCfmFactor = 2.118880003 // L/s to ft³/min
	m2ToFt2Factor  = 10.76391042
	mToFtFactor    = 3.280839895
	litersToGalFactor = 0.2641720524
	copToEerFactor = 3.412142
)

// Air-film resistances added when deriving a composite assembly value from
// bare layer resistances (interior + exterior still-air films, RSI).
const (
	interiorFilmRSI = 0.12
	exteriorFilmRSI = 0.03
)

// RSIToR converts thermal resistance from RSI (m²·K/W) to imperial R-value.
func RSIToR(rsi float64) float64 { return rsi * rsiToRFactor }

// USIToU converts thermal transmittance from W/m²·K to Btu/hr·ft²·°F.
func USIToU(usi float64) float64 { return usi / rsiToRFactor }

// KWToBtuh converts capacity from kW to Btu/hr.
func KWToBtuh(kw float64) float64 { return kw * kwToBtuhFactor }

// LpsToCfm converts airflow from L/s to CFM.
func LpsToCfm(lps float64) float64 { return lps * lpsToCfmFactor }

// M2ToFt2 converts area from m² to ft².
func M2ToFt2(m2 float64) float64 { return m2 * m2ToFt2Factor }

// MToFt converts length from m to ft.
func MToFt(m float64) float64 { return m * mToFtFactor }

// LitersToGallons converts volume from L to US gallons.
func LitersToGallons(l float64) float64 { return l * litersToGalFactor }

// CopToSeer approximates a seasonal rating from a steady-state COP. H2K
// files carry COP for cooling equipment while HPXML wants SEER.
func CopToSeer(cop float64) float64 { return cop * copToEerFactor }

// EffectiveAssemblyRSI derives a composite assembly resistance from the bare
// resistances of the assembly's layers plus standard air films. Returns 0
// for an empty layer list so callers can detect the absence.
func EffectiveAssemblyRSI(layerRSIs []float64) float64 {
	if len(layerRSIs) == 0 {
		return 0
	}
	total := interiorFilmRSI + exteriorFilmRSI
	for _, r := range layerRSIs {
		total += r
	}
	return total
}

// WindowAreaM2 computes glazed area from H2K millimetre dimensions.
func WindowAreaM2(heightMM, widthMM float64) float64 {
	return (heightMM / 1000) * (widthMM / 1000)
}

// Clamp limits v to [lo, hi]. The second return reports whether clamping
// occurred, so callers can register an out-of-range warning.
func Clamp(v, lo, hi float64) (float64, bool) {
	if v < lo {
		return lo, true
	}
	if v > hi {
		return hi, true
	}
	return v, false
}

// Round1 rounds to one decimal place. Serialized values are rounded so the
// output is byte-stable across platforms.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
