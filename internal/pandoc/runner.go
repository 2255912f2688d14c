// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc locates a pandoc executable, either on PATH or inside a
// docker/podman container, and runs it as a stdin-to-stdout filter.
package pandoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binPandoc = "pandoc"
	binDocker = "docker"
	binPodman = "podman"
)

// Runner executes pandoc with the given arguments, piping stdin to it and
// its output to stdout.
type Runner interface {
	// Name describes where pandoc runs ("pandoc", "docker", "podman").
	Name() string

	// Run executes pandoc with args.
	Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// localRunner runs a pandoc binary found on PATH.
type localRunner struct {
	path string
	exec executor
}

func (r *localRunner) Name() string { return binPandoc }

func (r *localRunner) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	if err := r.exec.RunPiped(ctx, r.path, args, stdin, stdout, &stderr); err != nil {
		return commandError("pandoc", err, stderr.String())
	}
	return nil
}

// containerRunner runs pandoc inside an image such as pandoc/core. Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type containerRunner struct {
	bin           string
	imageCheckCmd []string
	image         string
	exec          executor
}

func (r *containerRunner) Name() string { return r.bin }

func (r *containerRunner) available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(ctx, r.bin, "info") == nil
}

func (r *containerRunner) imageExists(ctx context.Context) error {
	args := append(append([]string{}, r.imageCheckCmd...), r.image)
	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", r.image, r.bin, err)
	}
	return nil
}

func (r *containerRunner) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	full := append([]string{"run", "--rm", "-i", r.image}, args...)
	var stderr bytes.Buffer
	if err := r.exec.RunPiped(ctx, r.bin, full, stdin, stdout, &stderr); err != nil {
		return commandError(r.bin+" "+r.image, err, stderr.String())
	}
	return nil
}

func newDockerRunner(image string, exec executor) *containerRunner {
	return &containerRunner{bin: binDocker, imageCheckCmd: []string{"image", "inspect"}, image: image, exec: exec}
}

func newPodmanRunner(image string, exec executor) *containerRunner {
	return &containerRunner{bin: binPodman, imageCheckCmd: []string{"image", "exists"}, image: image, exec: exec}
}

func commandError(what string, err error, stderr string) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("running %s: %w: %s", what, err, msg)
	}
	return fmt.Errorf("running %s: %w", what, err)
}

var defaultExec = &osExecutor{}

// Detect returns a Runner for pandoc on PATH, falling back to image under
// docker and then podman. It fails when none of them is usable.
func Detect(ctx context.Context, image string) (Runner, error) {
	return detect(ctx, image, defaultExec)
}

func detect(ctx context.Context, image string, exec executor) (Runner, error) {
	if path, err := exec.LookPath(binPandoc); err == nil {
		return &localRunner{path: path, exec: exec}, nil
	}
	if image == "" {
		return nil, fmt.Errorf("pandoc not found on PATH and no container image configured")
	}

	var imageErr error
	for _, r := range []*containerRunner{newDockerRunner(image, exec), newPodmanRunner(image, exec)} {
		if !r.available(ctx) {
			continue
		}
		if err := r.imageExists(ctx); err != nil {
			imageErr = err
			continue
		}
		return r, nil
	}
	if imageErr != nil {
		return nil, fmt.Errorf("pandoc not found on PATH: %w", imageErr)
	}
	return nil, fmt.Errorf(
		"pandoc not found: not on PATH and neither %s nor %s is available to run %s",
		binDocker, binPodman, image,
	)
}
