// Package app locates and launches the Brain.fm desktop app with remote
// debugging enabled.
package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"howett.net/plist"
)

const (
	// DefaultPath is where the app normally lives.
	DefaultPath = "/Applications/Brain.fm.app"
	// BundleID is used for Spotlight lookup when the default path is empty.
	BundleID = "com.electron.brain.fm"
)

// Find returns the app bundle path, trying the default install location
// first and falling back to a Spotlight query by bundle identifier.
// /Applications installs win over stray copies; shorter paths break ties.
func Find() (string, error) {
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath, nil
	}

	out, err := exec.Command("mdfind", "kMDItemCFBundleIdentifier="+BundleID).Output()
	if err != nil {
		return "", fmt.Errorf("spotlight query failed: %w", err)
	}
	var candidates []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && strings.HasSuffix(line, ".app") {
			candidates = append(candidates, line)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("Brain.fm app not found (bundle id %s)", BundleID)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		iApps := strings.HasPrefix(candidates[i], "/Applications/")
		jApps := strings.HasPrefix(candidates[j], "/Applications/")
		if iApps != jApps {
			return iApps
		}
		return len(candidates[i]) < len(candidates[j])
	})
	return candidates[0], nil
}

// Launch starts the app binary detached with the debugging port open. The
// caller is responsible for waiting until the port accepts connections.
func Launch(appPath string, port int) error {
	bin := filepath.Join(appPath, "Contents", "MacOS", "Brain.fm")
	cmd := exec.Command(bin,
		fmt.Sprintf("--remote-debugging-port=%d", port),
		"--remote-allow-origins=*",
	)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", appPath, err)
	}
	// Detach; the app outlives the watcher.
	return cmd.Process.Release()
}

// bundleInfo is the slice of Info.plist we care about.
type bundleInfo struct {
	CFBundleIconFile string `plist:"CFBundleIconFile"`
}

// IconPath resolves the bundle's icns file, preferring the Info.plist
// CFBundleIconFile entry and falling back to the first icns in Resources.
func IconPath(appPath string) (string, error) {
	resources := filepath.Join(appPath, "Contents", "Resources")

	data, err := os.ReadFile(filepath.Join(appPath, "Contents", "Info.plist"))
	if err == nil {
		var info bundleInfo
		if _, err := plist.Unmarshal(data, &info); err == nil && info.CFBundleIconFile != "" {
			name := info.CFBundleIconFile
			if !strings.HasSuffix(name, ".icns") {
				name += ".icns"
			}
			p := filepath.Join(resources, name)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}

	matches, err := filepath.Glob(filepath.Join(resources, "*.icns"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("no icns found under %s", resources)
	}
	return matches[0], nil
}
