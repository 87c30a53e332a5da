package animated

import (
	"fmt"
	"strings"
)

// CenterMode defines which frames an animation carries: the Hill frame alone,
// or the Hill frame plus an inertial frame anchored at a central body.
type CenterMode uint8

const (
	// CenterHill animates the Hill frame only.
	CenterHill CenterMode = iota
	// CenterEarth adds an Earth centered inertial frame.
	CenterEarth
	// CenterSun adds a Sun centered inertial frame.
	CenterSun
)

// ParseCenterMode returns the mode for the given selector keyword. The empty
// string selects the Hill frame alone.
func ParseCenterMode(keyword string) (CenterMode, error) {
	switch keyword {
	case "":
		return CenterHill, nil
	case "earth-centered":
		return CenterEarth, nil
	case "sun-centered":
		return CenterSun, nil
	default:
		return CenterHill, fmt.Errorf("unknown frame centering '%s': %w", keyword, ErrInvalidOption)
	}
}

// Inertial returns whether this mode requests the inertial frame.
func (m CenterMode) Inertial() bool {
	return m == CenterEarth || m == CenterSun
}

// Body returns the central body of an inertial mode.
func (m CenterMode) Body() CelestialObject {
	switch m {
	case CenterEarth:
		return Earth
	case CenterSun:
		return Sun
	default:
		panic(fmt.Errorf("no central body in mode %d", m))
	}
}

// Texture returns the name of the texture asset of an inertial mode, relative
// to the configured texture directory.
func (m CenterMode) Texture() string {
	switch m {
	case CenterEarth:
		return "earth.jpg"
	case CenterSun:
		return "sun.jpg"
	default:
		panic(fmt.Errorf("no texture in mode %d", m))
	}
}

// String implements the Stringer interface.
func (m CenterMode) String() string {
	switch m {
	case CenterHill:
		return "hill"
	case CenterEarth:
		return "earth-centered"
	case CenterSun:
		return "sun-centered"
	default:
		return fmt.Sprintf("mode %d", m)
	}
}

// CelestialObject defines a celestial body about which a reference orbit may
// be defined.
type CelestialObject struct {
	Name   string
	Radius float64
	a      float64
	μ      float64
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 695700, -1, 1.32712440017987e11}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378.1363, 149598023, 3.98600433e5}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 3396.19, 227939282.5616, 4.28283100e4}
