package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// Platform identifies an operating system family that environments are resolved for.
// The values match the platform segment of lockfile names (deps.yml.<platform>.lock).
type Platform string

const (
	// PlatformLinux is any Linux distribution.
	PlatformLinux Platform = "linux"
	// PlatformMacOS is macOS.
	PlatformMacOS Platform = "osx"
	// PlatformWindows is Windows.
	PlatformWindows Platform = "win"
)

var platformAliases = map[string]Platform{
	"linux":   PlatformLinux,
	"osx":     PlatformMacOS,
	"macos":   PlatformMacOS,
	"mac":     PlatformMacOS,
	"darwin":  PlatformMacOS,
	"win":     PlatformWindows,
	"windows": PlatformWindows,
	"win32":   PlatformWindows,
	"win64":   PlatformWindows,
}

// ParsePlatform accepts a platform name or one of its common aliases, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	if p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", Tag(ErrUnsupportedPlatform, zerr.With(zerr.New("unknown platform"), "platform", s))
}

// HostPlatform returns the platform of the running process.
func HostPlatform() (Platform, error) {
	return PlatformForGOOS(runtime.GOOS)
}

// PlatformForGOOS maps a Go GOOS value to a Platform.
func PlatformForGOOS(goos string) (Platform, error) {
	switch goos {
	case "linux":
		return PlatformLinux, nil
	case "darwin":
		return PlatformMacOS, nil
	case "windows":
		return PlatformWindows, nil
	default:
		return "", Tag(ErrUnsupportedPlatform, zerr.With(zerr.New("unsupported host operating system"), "goos", goos))
	}
}

// String returns the lockfile name segment of p.
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the human readable name of p.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformLinux:
		return "Linux"
	case PlatformMacOS:
		return "macOS"
	case PlatformWindows:
		return "Windows"
	default:
		return string(p)
	}
}

// ContainerPlatform returns the container runtime platform string for p, or "" when
// environments for p cannot be resolved inside a container.
func (p Platform) ContainerPlatform() string {
	if p == PlatformLinux {
		return "linux/amd64"
	}
	return ""
}

// CheckFreezePair returns nil when an environment for target can be resolved on host.
// Same-platform freezes are supported on Linux and macOS hosts; the only cross-platform
// pair is a macOS host resolving for Linux.
func CheckFreezePair(host, target Platform) error {
	switch {
	case host == target && (host == PlatformLinux || host == PlatformMacOS):
		return nil
	case host == PlatformMacOS && target == PlatformLinux:
		return nil
	default:
		return UnsupportedPairError(host, target)
	}
}

// UnsupportedPairError reports that target environments cannot be produced on host.
func UnsupportedPairError(host, target Platform) error {
	err := zerr.New("cannot resolve an environment for " + target.DisplayName() + " on " + host.DisplayName())
	err = zerr.With(err, "host", host.String())
	err = zerr.With(err, "target", target.String())
	return Tag(ErrUnsupportedPlatform, err)
}
