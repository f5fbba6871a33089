package sdk

import (
	"errors"
	"strings"
	"testing"
)

func sizes(icons []IconSpec) []int {
	out := make([]int, len(icons))
	for i, ic := range icons {
		out[i] = ic.Size
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolveCatalog(t *testing.T) {
	android := []int{24, 36, 48, 72, 96}
	tests := []struct {
		id      string
		baseDir string
		sizes   []int
	}{
		{"native", "res/", android},
		{"unity", "Assets/Plugins/Android/OneSignalConfig/res", android},
		{"cordova", "platforms/android/res/", android},
		{"ionic", "resources/android/custom/", []int{72}},
		{"phonegap", "locales/android/", android},
		{"corona", "./", []int{16, 24, 36, 48, 72}},
		{"xamarin", "Resources/", android},
	}
	for _, tt := range tests {
		d, err := Resolve(tt.id)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.id, err)
		}
		if d.ID != tt.id {
			t.Errorf("Resolve(%q).ID = %q", tt.id, d.ID)
		}
		if d.BaseDir != tt.baseDir {
			t.Errorf("Resolve(%q).BaseDir = %q, want %q", tt.id, d.BaseDir, tt.baseDir)
		}
		if got := sizes(d.Icons); !equalInts(got, tt.sizes) {
			t.Errorf("Resolve(%q) sizes = %v, want %v", tt.id, got, tt.sizes)
		}
		for _, ic := range d.Icons {
			if ic.Cropped() {
				t.Errorf("Resolve(%q): %s unexpectedly cropped", tt.id, ic.Name)
			}
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	for _, id := range []string{"bogus", "", "Native", "UNITY", " native"} {
		_, err := Resolve(id)
		if !errors.Is(err, ErrUnknownSDK) {
			t.Errorf("Resolve(%q) err = %v, want ErrUnknownSDK", id, err)
			continue
		}
		var ue *UnknownSDKError
		if !errors.As(err, &ue) || ue.ID != id {
			t.Errorf("Resolve(%q) did not name the id: %v", id, err)
		}
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	d, _ := Resolve("native")
	d.Icons[0].Size = 1000

	again, _ := Resolve("native")
	if again.Icons[0].Size != 24 {
		t.Fatalf("catalog mutated through Resolve result: size = %d", again.Icons[0].Size)
	}
	unity, _ := Resolve("unity")
	if unity.Icons[0].Size != 24 {
		t.Fatalf("shared density table mutated: size = %d", unity.Icons[0].Size)
	}
}

func TestDestinationsUnique(t *testing.T) {
	for _, id := range IDs() {
		d, _ := Resolve(id)
		seen := map[string]bool{}
		for _, ic := range d.Icons {
			dst := d.Destination(ic)
			if seen[dst] {
				t.Errorf("%s: duplicate destination %s", id, dst)
			}
			seen[dst] = true
		}
	}
}

func TestDestinationJoinsBaseDir(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"native", "res/drawable-mdpi/ic_stat_onesignal_default.png"},
		{"unity", "Assets/Plugins/Android/OneSignalConfig/res/drawable-mdpi/ic_stat_onesignal_default.png"},
		{"ionic", "resources/android/custom/drawable-xxhdpi/ic_stat_onesignal_default"},
		{"corona", "IconNotificationDefault-ldpi.png"},
	}
	for _, tt := range tests {
		d, _ := Resolve(tt.id)
		if got := d.Destination(d.Icons[0]); got != tt.want {
			t.Errorf("%s: Destination = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIDs(t *testing.T) {
	got := strings.Join(IDs(), ",")
	want := "cordova,corona,ionic,native,phonegap,unity,xamarin"
	if got != want {
		t.Errorf("IDs() = %s, want %s", got, want)
	}
}
