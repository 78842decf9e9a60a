package docker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/zerr"
)

// RenderDockerfile renders spec as a Dockerfile. Steps use the exec form, so no argument
// is ever interpreted by a shell during the build.
func RenderDockerfile(spec domain.BuildSpec) ([]byte, error) {
	var buf bytes.Buffer

	if spec.Platform != "" {
		fmt.Fprintf(&buf, "FROM --platform=%s %s\n", spec.Platform, spec.BaseImage)
	} else {
		fmt.Fprintf(&buf, "FROM %s\n", spec.BaseImage)
	}

	for _, key := range slices.Sorted(maps.Keys(spec.Labels)) {
		fmt.Fprintf(&buf, "LABEL %s=%s\n", strconv.Quote(key), strconv.Quote(spec.Labels[key]))
	}

	if spec.WorkDir != "" {
		fmt.Fprintf(&buf, "WORKDIR %s\n", spec.WorkDir)
	}

	for _, step := range spec.Steps {
		if len(step) == 0 {
			continue
		}
		argv, err := json.Marshal(step)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode build step")
		}
		fmt.Fprintf(&buf, "RUN %s\n", argv)
	}

	return buf.Bytes(), nil
}

// RenderScript joins argv lists into one POSIX shell command line. Every argument is
// quoted, and a failing command stops the rest.
func RenderScript(steps [][]string) string {
	quoted := make([]string, 0, len(steps))
	for _, step := range steps {
		if len(step) == 0 {
			continue
		}
		quoted = append(quoted, shellescape.QuoteCommand(step))
	}
	return strings.Join(quoted, " && ")
}
