package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agusespa/testsmith/internal/utils"
	"github.com/agusespa/testsmith/pkg/logging"
)

const (
	DefaultCommitMessage = "chore: generated files"
	DefaultRemote        = "origin"
	DefaultBranch        = "main"
)

// LocalGit commits and pushes everything under a repository root using the
// git CLI.
type LocalGit struct {
	root   string
	runner ExecRunner
	logger *slog.Logger
}

func NewLocalGit(root string, runner ExecRunner, logger *slog.Logger) *LocalGit {
	if runner == nil {
		runner = RealExecRunner{}
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &LocalGit{root: root, runner: runner, logger: logging.OrDefault(logger)}
}

func (g *LocalGit) git(ctx context.Context, args ...string) (string, error) {
	res, err := g.runner.Run(ctx, g.root, "git", args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("git %s failed with exit code %d: %s", args[0], res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return strings.TrimSpace(res.Stdout), nil
}

func (g *LocalGit) ensureRepo(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(g.root, ".git")); err == nil {
		return nil
	}
	if err := os.MkdirAll(g.root, 0o755); err != nil {
		return fmt.Errorf("failed to create repository root: %w", err)
	}
	if _, err := g.git(ctx, "init"); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	g.logger.Info("initialized git repository", "root", g.root)
	return nil
}

// AddCommitPush stages everything, commits when something changed, switches
// to branch and pushes it. A failed push is logged and ignored. It returns the
// HEAD commit.
func (g *LocalGit) AddCommitPush(ctx context.Context, message, remote, branch string) (string, error) {
	if message == "" {
		message = DefaultCommitMessage
	}
	if remote == "" {
		remote = DefaultRemote
	}
	if branch == "" {
		branch = DefaultBranch
	}

	if err := g.ensureRepo(ctx); err != nil {
		return "", err
	}

	if _, err := g.git(ctx, "add", "-A"); err != nil {
		return "", err
	}

	status, err := g.git(ctx, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	if changed := utils.ParseChangedFiles(status); len(changed) > 0 {
		g.logger.Info("committing changes", "files", len(changed), "root", g.root)
		if _, err := g.git(ctx, "commit", "-m", message); err != nil {
			return "", err
		}
	}

	current, err := g.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if current != branch {
		if _, err := g.git(ctx, "checkout", branch); err != nil {
			if _, err := g.git(ctx, "checkout", "-b", branch); err != nil {
				return "", err
			}
		}
	}

	if _, err := g.git(ctx, "push", "--set-upstream", remote, branch); err != nil {
		g.logger.Warn("git push failed, remote may not be configured", "remote", remote, "branch", branch, "error", err)
	}

	sha, err := g.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return sha, nil
}
