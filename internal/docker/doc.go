// Package docker checks that a Docker daemon is reachable for the doctor
// command.
//
// Apps deployed to the Heroku container stack are built from a Dockerfile
// referenced by heroku.yml. Heroku builds the image remotely, so Docker is
// optional for deploys; doctor reports its status so that users who want to
// reproduce the build locally (`docker build .`) learn early that the daemon
// is missing.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
