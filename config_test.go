package animated

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfDefaults(t *testing.T) {
	os.Unsetenv("ANIMATED_CONFIG")
	cfgLoaded = false
	c := conf()
	if c.OutputDir != "./out" || c.TextureDir != "./textures" {
		t.Fatalf("default directories wrong: %+v", c)
	}
	if c.Tick != 100*time.Millisecond || c.Refresh != 100*time.Millisecond {
		t.Fatalf("default periods wrong: %+v", c)
	}
	if !cfgLoaded {
		t.Fatal("configuration was not memoized")
	}
}

func TestConfMissing(t *testing.T) {
	os.Setenv("ANIMATED_CONFIG", t.TempDir())
	defer os.Unsetenv("ANIMATED_CONFIG")
	cfgLoaded = false
	assertPanic(t, func() {
		conf()
	})
	cfgLoaded = false
}

func TestConfToml(t *testing.T) {
	dir := t.TempDir()
	toml := `[general]
output_path = "/tmp/anim-out"
texture_path = "/tmp/anim-tex"

[playback]
tick = "50ms"
refresh = "25ms"
`
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(toml), 0644); err != nil {
		t.Fatalf("fixture write failed: %s", err)
	}
	os.Setenv("ANIMATED_CONFIG", dir)
	cfgLoaded = false
	c := conf()
	os.Unsetenv("ANIMATED_CONFIG")
	if c.OutputDir != "/tmp/anim-out" || c.TextureDir != "/tmp/anim-tex" {
		t.Fatalf("directories not read: %+v", c)
	}
	if c.Tick != 50*time.Millisecond || c.Refresh != 25*time.Millisecond {
		t.Fatalf("periods not read: %+v", c)
	}
	// Back to the defaults for the rest of the suite.
	cfgLoaded = false
	conf()
}
