package units

import "strings"

// compass maps H2K facing-direction names to azimuth degrees (clockwise
// from north).
var compass = map[string]int{
	"north":     0,
	"northeast": 45,
	"east":      90,
	"southeast": 135,
	"south":     180,
	"southwest": 225,
	"west":      270,
	"northwest": 315,
}

// facingCodes maps H2K FacingDirection numeric codes to compass names.
var facingCodes = map[string]string{
	"1": "north",
	"2": "northeast",
	"3": "east",
	"4": "southeast",
	"5": "south",
	"6": "southwest",
	"7": "west",
	"8": "northwest",
}

// OrientationName normalizes a facing direction given as either an H2K
// numeric code or a compass name. The second return is false for values
// that are neither.
func OrientationName(v string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(v))
	if name, ok := facingCodes[s]; ok {
		return name, true
	}
	if _, ok := compass[s]; ok {
		return s, true
	}
	return "", false
}

// Azimuth converts a normalized compass name to degrees. The second return
// is false for unknown names.
func Azimuth(name string) (int, bool) {
	deg, ok := compass[strings.ToLower(strings.TrimSpace(name))]
	return deg, ok
}
