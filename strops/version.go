// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

package strops

const (
	versionMajor = 1
	versionMinor = 0
	versionPatch = 0
)

// VersionMajor returns the library's major version.
func VersionMajor() int { return versionMajor }

// VersionMinor returns the library's minor version.
func VersionMinor() int { return versionMinor }

// VersionPatch returns the library's patch version.
func VersionPatch() int { return versionPatch }
