package app

import (
	"os"
	"path/filepath"
	"testing"
)

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.electron.brain.fm</string>
	<key>CFBundleIconFile</key>
	<string>icon</string>
</dict>
</plist>
`

func fakeBundle(t *testing.T, withPlist bool, icnsNames ...string) string {
	t.Helper()
	appPath := filepath.Join(t.TempDir(), "Brain.fm.app")
	resources := filepath.Join(appPath, "Contents", "Resources")
	if err := os.MkdirAll(resources, 0o755); err != nil {
		t.Fatal(err)
	}
	if withPlist {
		if err := os.WriteFile(filepath.Join(appPath, "Contents", "Info.plist"), []byte(infoPlist), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range icnsNames {
		if err := os.WriteFile(filepath.Join(resources, name), []byte{}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return appPath
}

func TestIconPathUsesPlistEntry(t *testing.T) {
	appPath := fakeBundle(t, true, "icon.icns", "other.icns")

	got, err := IconPath(appPath)
	if err != nil {
		t.Fatalf("IconPath: %v", err)
	}
	if filepath.Base(got) != "icon.icns" {
		t.Fatalf("expected plist icon, got %s", got)
	}
}

func TestIconPathFallsBackToGlob(t *testing.T) {
	appPath := fakeBundle(t, false, "electron.icns")

	got, err := IconPath(appPath)
	if err != nil {
		t.Fatalf("IconPath: %v", err)
	}
	if filepath.Base(got) != "electron.icns" {
		t.Fatalf("expected glob fallback, got %s", got)
	}
}

func TestIconPathNoIcns(t *testing.T) {
	appPath := fakeBundle(t, false)

	if _, err := IconPath(appPath); err == nil {
		t.Fatal("expected error when bundle has no icns")
	}
}
