// Package sdk holds the static catalog of supported SDKs and the icon sets
// each one expects.
package sdk

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrUnknownSDK is matched by errors.Is for any *UnknownSDKError.
var ErrUnknownSDK = errors.New("unknown SDK")

// UnknownSDKError names an identifier that is not in the catalog.
type UnknownSDKError struct {
	ID string
}

func (e *UnknownSDKError) Error() string {
	return fmt.Sprintf("no settings found for SDK: %s", e.ID)
}

func (e *UnknownSDKError) Unwrap() error { return ErrUnknownSDK }

// IconSpec is one required output icon.
type IconSpec struct {
	Name       string // relative to the descriptor's BaseDir, may contain subdirectories
	Size       int    // resize target, width = height
	CropHeight int    // 0 = no crop; otherwise crop to Size×CropHeight after resizing
}

// Cropped reports whether the icon is non-square.
func (s IconSpec) Cropped() bool { return s.CropHeight > 0 }

// Descriptor describes one SDK's output directory and icon set.
type Descriptor struct {
	ID      string
	Name    string
	BaseDir string
	Icons   []IconSpec
}

// Destination returns the output path for spec within d.
func (d Descriptor) Destination(spec IconSpec) string {
	return filepath.Join(d.BaseDir, spec.Name)
}

const androidIcon = "ic_stat_onesignal_default"

// androidDensities is the drawable set shared by every Android-based SDK.
var androidDensities = []IconSpec{
	{Name: "drawable-mdpi/" + androidIcon + ".png", Size: 24},
	{Name: "drawable-hdpi/" + androidIcon + ".png", Size: 36},
	{Name: "drawable-xhdpi/" + androidIcon + ".png", Size: 48},
	{Name: "drawable-xxhdpi/" + androidIcon + ".png", Size: 72},
	{Name: "drawable-xxxhdpi/" + androidIcon + ".png", Size: 96},
}

var catalog = map[string]Descriptor{
	"native": {
		Name:    "Android Native",
		BaseDir: "res/",
		Icons:   androidDensities,
	},
	"unity": {
		Name:    "Unity",
		BaseDir: "Assets/Plugins/Android/OneSignalConfig/res",
		Icons:   androidDensities,
	},
	"cordova": {
		Name:    "PhoneGap, Cordova, Ionic",
		BaseDir: "platforms/android/res/",
		Icons:   androidDensities,
	},
	"ionic": {
		Name:    "Ionic Package (Cloud Build)",
		BaseDir: "resources/android/custom/",
		Icons: []IconSpec{
			{Name: "drawable-xxhdpi/" + androidIcon, Size: 72},
		},
	},
	"phonegap": {
		Name:    "PhoneGap Build (PGB)",
		BaseDir: "locales/android/",
		Icons:   androidDensities,
	},
	"corona": {
		Name:    "Corona",
		BaseDir: "./",
		Icons: []IconSpec{
			{Name: "IconNotificationDefault-ldpi.png", Size: 16},
			{Name: "IconNotificationDefault-mdpi.png", Size: 24},
			{Name: "IconNotificationDefault-hdpi.png", Size: 36},
			{Name: "IconNotificationDefault-xhdpi.png", Size: 48},
			{Name: "IconNotificationDefault-xxhdpi.png", Size: 72},
		},
	},
	"xamarin": {
		Name:    "Xamarin",
		BaseDir: "Resources/",
		Icons:   androidDensities,
	},
}

// Resolve looks up the descriptor for id. Matching is case-sensitive.
// The returned descriptor owns its Icons slice.
func Resolve(id string) (Descriptor, error) {
	d, ok := catalog[id]
	if !ok {
		return Descriptor{}, &UnknownSDKError{ID: id}
	}
	d.ID = id
	d.Icons = append([]IconSpec(nil), d.Icons...)
	return d, nil
}

// IDs returns every catalog identifier, sorted.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
