package dalgebra

import "testing"

func TestVersion(t *testing.T) {
	if Version.Major != 0 && Version.Minor != 0 && Version.Patch != 0 {
		return
	}
	if Version.String() == "" {
		t.Fatal("empty version string")
	}
}
