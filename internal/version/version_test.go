// ABOUTME: Tests for version constants
// ABOUTME: The version is embedded in cache names, so it must stay URL safe
package version

import (
	"regexp"
	"testing"
)

func TestVersionIsSemver(t *testing.T) {
	if !regexp.MustCompile(`^\d+\.\d+\.\d+$`).MatchString(Version) {
		t.Errorf("Version %q is not MAJOR.MINOR.PATCH", Version)
	}
}

func TestProductAndManufacturer(t *testing.T) {
	for name, v := range map[string]string{"Product": Product, "Manufacturer": Manufacturer} {
		if v == "" {
			t.Errorf("%s should not be empty", name)
		}
		if len(v) > 100 {
			t.Errorf("%s is unreasonably long", name)
		}
	}
}
