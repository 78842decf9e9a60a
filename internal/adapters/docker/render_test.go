package docker_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/condalock/internal/adapters/docker"
	"go.trai.ch/condalock/internal/core/domain"
)

func freezeBuildSpec() domain.BuildSpec {
	return domain.BuildSpec{
		BaseImage: "continuumio/miniconda3:latest",
		Platform:  "linux/amd64",
		WorkDir:   "/work",
		Steps: [][]string{
			{"conda", "config", "--set", "always_yes", "true"},
			{"conda", "clean", "--all", "--yes"},
		},
		Labels: map[string]string{
			"org.opencontainers.image.title": "condalock-freeze",
			"org.condalock.base":             "continuumio/miniconda3:latest",
		},
	}
}

func TestRenderDockerfile(t *testing.T) {
	out, err := docker.RenderDockerfile(freezeBuildSpec())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "freeze_dockerfile", out)
}

func TestRenderDockerfile_NoPlatform(t *testing.T) {
	out, err := docker.RenderDockerfile(domain.BuildSpec{BaseImage: "alpine:3"})
	require.NoError(t, err)
	assert.Equal(t, "FROM alpine:3\n", string(out))
}

func TestRenderScript(t *testing.T) {
	script := docker.RenderScript([][]string{
		{"conda", "env", "create", "--force", "--quiet", "--name", "condalock-1234", "--file", "/work/deps.yml"},
		{"conda", "env", "export", "--name", "condalock-1234", "--file", "/work/lock.yml"},
	})

	g := goldie.New(t)
	g.Assert(t, "freeze_script", []byte(script))
}

func TestRenderScript_QuotesArguments(t *testing.T) {
	script := docker.RenderScript([][]string{
		{"echo", "it's here"},
		{},
		{"touch", "a b; rm -rf /"},
	})
	assert.Equal(t, `echo 'it'"'"'s here' && touch 'a b; rm -rf /'`, script)
}
