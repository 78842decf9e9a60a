package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/condalock/internal/core/domain"
)

func TestCommandString(t *testing.T) {
	cmd := domain.Command{Name: "conda", Args: []string{"env", "export", "--name", "x"}}
	assert.Equal(t, "conda env export --name x", cmd.String())
}

func TestBuildSpecDigest(t *testing.T) {
	base := domain.BuildSpec{
		BaseImage: "continuumio/miniconda3:latest",
		Platform:  "linux/amd64",
		WorkDir:   "/work",
		Steps:     [][]string{{"conda", "config", "--set", "always_yes", "true"}},
		Labels:    map[string]string{"a": "1", "b": "2"},
	}
	same := base
	same.Labels = map[string]string{"b": "2", "a": "1"}
	assert.Equal(t, base.Digest(), same.Digest())

	changed := base
	changed.Steps = [][]string{{"conda", "config", "--set", "always_yes", "false"}}
	assert.NotEqual(t, base.Digest(), changed.Digest())

	split := base
	split.Steps = [][]string{{"conda", "config"}, {"--set", "always_yes", "true"}}
	assert.NotEqual(t, base.Digest(), split.Digest())

	assert.True(t, strings.HasPrefix(base.ImageTag(), "condalock-freeze:"))
	assert.Len(t, strings.TrimPrefix(base.ImageTag(), "condalock-freeze:"), domain.ContentHashLen)
}

func TestNewSessionName(t *testing.T) {
	a, b := domain.NewSessionName(), domain.NewSessionName()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, domain.SessionPrefix))
}
