package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/shopify-heroku/internal/model"
)

func TestDeploy_PushesMain(t *testing.T) {
	env := newTestEnv(t)

	code := env.run("deploy", "demo")

	assert.Equal(t, model.ExitSuccess, code, env.output())
	assert.Equal(t, []string{
		"heroku stack:set container --app demo",
		"heroku git:remote -a demo",
		"git push heroku main",
	}, env.runner.CommandLines())
	// The push is streamed so git's progress reaches the terminal.
	assert.Equal(t, "stream", env.runner.Calls[2].Mode)
	assert.Contains(t, env.output(), "Successfully deployed")
}

func TestDeploy_FallsBackToMaster(t *testing.T) {
	env := newTestEnv(t)
	env.runner.Fail("git push heroku main", "")

	code := env.run("deploy", "demo")

	assert.Equal(t, model.ExitSuccess, code, env.output())
	assert.Equal(t, []string{
		"heroku stack:set container --app demo",
		"heroku git:remote -a demo",
		"git push heroku main",
		"git push heroku master",
	}, env.runner.CommandLines())
	assert.Contains(t, env.output(), "Deployment failed with main branch, trying master branch...")
}

func TestDeploy_BothPushesFail(t *testing.T) {
	env := newTestEnv(t)
	env.runner.
		Fail("git push heroku main", "").
		Fail("git push heroku master", "")

	code := env.run("deploy", "demo")

	assert.Equal(t, model.ExitGeneralError, code)
	assert.Contains(t, env.output(), "Deployment failed")
	assert.Contains(t, env.output(), "Make sure you are in a git repository and have committed your changes.")
}

// TestDeploy_PreparationFailuresAreWarnings verifies that neither stack:set
// nor git:remote can prevent the push from being attempted.
func TestDeploy_PreparationFailuresAreWarnings(t *testing.T) {
	env := newTestEnv(t)
	env.runner.
		Fail("heroku stack:set container --app demo", "Stack is already container").
		Fail("heroku git:remote -a demo", "Couldn't find that app.")

	code := env.run("deploy", "demo")

	assert.Equal(t, model.ExitSuccess, code, env.output())
	assert.True(t, env.runner.Called("git push heroku main"))
	assert.Contains(t, env.output(), "Failed to set Heroku stack, it might be already set")
	assert.Contains(t, env.output(), "Continuing with deployment anyway...")
}

func TestDeploy_CustomRemoteAndBranches(t *testing.T) {
	env := newTestEnv(t)
	cfgPath := env.writeFile(t, "shopify-heroku.jsonc", `{
  "remote": "production", // created by heroku git:remote -r production
  "branches": ["release", "main", "master"],
}`)
	env.runner.Fail("git push production release", "")

	code := env.run("--config", cfgPath, "deploy", "demo")

	assert.Equal(t, model.ExitSuccess, code, env.output())
	assert.True(t, env.runner.Called("heroku git:remote -a demo -r production"))
	assert.True(t, env.runner.Called("git push production main"))
	assert.False(t, env.runner.Called("git push production master"))
}

func TestDeploy_RequiresAppName(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, model.ExitGeneralError, env.run("deploy"))
	assert.Empty(t, env.runner.Calls)
}
