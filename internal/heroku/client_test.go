package heroku

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
	"github.com/shinji-kodama/shopify-heroku/internal/runner"
	"github.com/shinji-kodama/shopify-heroku/internal/runner/runnertest"
)

const infoOutput = `=== demo
Addons:         heroku-postgresql:essential-0
Auto Cert Mgmt: true
Dynos:          web: 1
Git URL:        https://git.heroku.com/demo.git
Owner:          dev@example.com
Region:         us
Repo Size:      0 B
Slug Size:      0 B
Stack:          container
Web URL:        https://demo-1a2b3c4d5e6f.herokuapp.com/
`

func TestWebURL(t *testing.T) {
	fake := runnertest.NewFake().OnOutput("heroku info --app demo", infoOutput)
	c := NewClient(fake, "")

	u, err := c.WebURL(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, "https://demo-1a2b3c4d5e6f.herokuapp.com/", u)
}

func TestWebURL_LabelMissing(t *testing.T) {
	fake := runnertest.NewFake().OnOutput("heroku info --app demo", "=== demo\nStack: container\n")
	c := NewClient(fake, "")

	_, err := c.WebURL(context.Background(), "demo")
	assert.ErrorIs(t, err, ErrWebURLNotFound)
}

func TestWebURL_CommandFails(t *testing.T) {
	fake := runnertest.NewFake().Fail("heroku info --app demo", "You do not have access to the app demo.")
	c := NewClient(fake, "")

	_, err := c.WebURL(context.Background(), "demo")
	require.Error(t, err)

	var cmdErr *runner.CommandError
	assert.True(t, errors.As(err, &cmdErr))
}

func TestConfigSet(t *testing.T) {
	fake := runnertest.NewFake()
	c := NewClient(fake, "")

	err := c.ConfigSet(context.Background(), "demo", model.EnvironmentVariable{Key: "SHOPIFY_API_SECRET", Value: "a=b=c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"heroku config:set SHOPIFY_API_SECRET=a=b=c --app demo"}, fake.CommandLines())
}

func TestConfigSet_FailureDoesNotLeakValue(t *testing.T) {
	fake := runnertest.NewFake().Fail("heroku config:set SHOPIFY_API_SECRET=s3cr3t --app demo", "Couldn't find that app.")
	c := NewClient(fake, "")

	err := c.ConfigSet(context.Background(), "demo", model.EnvironmentVariable{Key: "SHOPIFY_API_SECRET", Value: "s3cr3t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOPIFY_API_SECRET")
	assert.Contains(t, err.Error(), "Couldn't find that app.")
	assert.NotContains(t, err.Error(), "s3cr3t")
}

func TestStackSetAndGitRemote(t *testing.T) {
	fake := runnertest.NewFake()
	c := NewClient(fake, "heroku-beta")

	require.NoError(t, c.StackSet(context.Background(), "demo", ContainerStack))
	require.NoError(t, c.GitRemote(context.Background(), "demo", DefaultGitRemote))
	require.NoError(t, c.GitRemote(context.Background(), "demo", "production"))

	assert.Equal(t, []string{
		"heroku-beta stack:set container --app demo",
		"heroku-beta git:remote -a demo",
		"heroku-beta git:remote -a demo -r production",
	}, fake.CommandLines())
}
