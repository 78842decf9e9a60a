package domain

import (
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Command is a subprocess invocation. Args never pass through a shell.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders c for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandResult is the fully buffered outcome of a finished subprocess.
type CommandResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// FreezeImageRepository is the repository of images built for cross-platform freezes.
const FreezeImageRepository = "condalock-freeze"

// BuildSpec describes the image a cross-platform freeze runs in.
type BuildSpec struct {
	BaseImage string
	Platform  string
	WorkDir   string
	// Steps are argv lists executed in order while building the image.
	Steps  [][]string
	Labels map[string]string
}

// Digest returns a content hash of the build description.
func (b BuildSpec) Digest() ContentHash {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("\x00")
	}
	write(b.BaseImage)
	write(b.Platform)
	write(b.WorkDir)
	for _, step := range b.Steps {
		for _, arg := range step {
			write(arg)
		}
		write("\x01")
	}
	for _, k := range sortedKeys(b.Labels) {
		write(k)
		write(b.Labels[k])
	}
	return contentHashOf(d.Sum64())
}

// ImageTag returns the tag the image is built under. Equal descriptions share a tag.
func (b BuildSpec) ImageTag() string {
	return FreezeImageRepository + ":" + b.Digest().String()
}

// Mount binds a host directory into a container.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// RunSpec describes one container invocation. Script holds argv lists run in order inside
// the container; the first failing command aborts the rest.
type RunSpec struct {
	Image    string
	Name     string
	Platform string
	WorkDir  string
	Mounts   []Mount
	Script   [][]string
}

// SessionPrefix starts every ephemeral environment and container name.
const SessionPrefix = "condalock-"

// NewSessionName returns a name unique to one freeze invocation.
func NewSessionName() string {
	return SessionPrefix + uuid.NewString()
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
