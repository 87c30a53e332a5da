package animated

import (
	"errors"
	"testing"
)

func TestCelestialObject(t *testing.T) {
	for _, object := range []CelestialObject{Sun, Earth, Mars} {
		if object.GM() <= 0 {
			t.Fatalf("%s has an invalid gravitational parameter", object)
		}
		if object.Radius <= 0 {
			t.Fatalf("%s has an invalid radius", object)
		}
		fromName, err := CelestialObjectFromString(object.Name)
		if err != nil {
			t.Fatalf("%s not found from its own name: %s", object, err)
		}
		if !object.Equals(fromName) {
			t.Fatalf("%s differs from %s", object, fromName)
		}
	}
	if _, err := CelestialObjectFromString("Vesta"); err == nil {
		t.Fatal("Vesta did not fail")
	}
}

func TestCenterMode(t *testing.T) {
	cases := []struct {
		keyword  string
		mode     CenterMode
		inertial bool
	}{
		{"", CenterHill, false},
		{"earth-centered", CenterEarth, true},
		{"sun-centered", CenterSun, true},
	}
	for _, c := range cases {
		mode, err := ParseCenterMode(c.keyword)
		if err != nil {
			t.Fatalf("'%s' did not parse: %s", c.keyword, err)
		}
		if mode != c.mode {
			t.Fatalf("'%s' parsed as %s", c.keyword, mode)
		}
		if mode.Inertial() != c.inertial {
			t.Fatalf("%s inertial flag wrong", mode)
		}
	}
	if _, err := ParseCenterMode("moon-centered"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %s", err)
	}
	if !Earth.Equals(CenterEarth.Body()) {
		t.Fatal("earth-centered mode is not centered on Earth")
	}
	if !Sun.Equals(CenterSun.Body()) {
		t.Fatal("sun-centered mode is not centered on the Sun")
	}
	if CenterEarth.Texture() != "earth.jpg" || CenterSun.Texture() != "sun.jpg" {
		t.Fatal("texture names wrong")
	}
	assertPanic(t, func() {
		CenterHill.Body()
	})
	assertPanic(t, func() {
		CenterHill.Texture()
	})
}
