// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// appDataDir returns an operating-system-appropriate home directory for
// the application named by appName, optionally roaming. This is the same
// well-known helper the dcrd family carries in dcrutil/appdata.go; it is
// reimplemented locally here rather than imported from dcrutil, since the
// rest of that package (address/key helpers) is out of this module's
// scope per spec.md's wallet Non-goal.
func appDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	appName = strings.TrimPrefix(appName, ".")
	appNameUpper := string(appName[0]-32) + appName[1:]
	appNameLower := string(appName[0]+32) + appName[1:]
	if appName[0] >= 'A' && appName[0] <= 'Z' {
		appNameUpper = appName
	} else if appName[0] >= 'a' && appName[0] <= 'z' {
		appNameLower = appName
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if roaming {
			appData = os.Getenv("APPDATA")
		}
		if appData != "" {
			return filepath.Join(appData, appNameUpper)
		}

	case "darwin":
		if homeDir := os.Getenv("HOME"); homeDir != "" {
			return filepath.Join(homeDir, "Library", "Application Support", appNameUpper)
		}

	case "plan9":
		if homeDir := os.Getenv("home"); homeDir != "" {
			return filepath.Join(homeDir, appNameLower)
		}

	default:
		homeDir := os.Getenv("HOME")
		if homeDir == "" {
			if u, err := user.Current(); err == nil {
				homeDir = u.HomeDir
			}
		}
		if homeDir != "" {
			return filepath.Join(homeDir, "."+appNameLower)
		}
	}

	return "."
}
