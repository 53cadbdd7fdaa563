package core

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// pinnedBranch is the local ref a pinned-commit fetch lands on.
const pinnedBranch = "refs/heads/fmtgauge-pinned"

// GitPreparer produces project checkouts with go-git.
type GitPreparer struct{}

var _ contract.RepoPreparer = GitPreparer{} // Compile-time check

// NewGitPreparer returns the go-git backed preparer.
func NewGitPreparer() GitPreparer {
	return GitPreparer{}
}

// Prepare ensures targetDir holds a usable checkout of the project and
// returns the project with Commit set to the actual HEAD SHA. An existing
// checkout is reused when no commit is pinned or when HEAD already matches
// the pin; a stale checkout is removed and rebuilt so the end state always
// has the pinned commit checked out.
func (p GitPreparer) Prepare(ctx context.Context, project schema.Project, targetDir string) (schema.Project, error) {
	if head, ok := existingHead(targetDir); ok {
		if project.Commit == "" || head == project.Commit {
			project.Commit = head
			return project, nil
		}
		if err := os.RemoveAll(targetDir); err != nil {
			return project, fmt.Errorf("failed to remove stale checkout of %q: %w", project.Name, err)
		}
	}

	var err error
	if project.Commit == "" {
		err = cloneDefaultHead(ctx, project, targetDir)
	} else {
		err = fetchPinnedCommit(ctx, project, targetDir)
	}
	if err != nil {
		return project, err
	}

	head, ok := existingHead(targetDir)
	if !ok {
		return project, fmt.Errorf("checkout of %q has no readable HEAD", project.Name)
	}
	project.Commit = head
	return project, nil
}

// existingHead returns the HEAD SHA of a checkout, or false when the
// directory is not a usable repository.
func existingHead(dir string) (string, bool) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", false
	}
	head, err := repo.Head()
	if err != nil {
		return "", false
	}
	return head.Hash().String(), true
}

// cloneDefaultHead shallow-clones the default branch.
func cloneDefaultHead(ctx context.Context, project schema.Project, targetDir string) error {
	_, err := git.PlainCloneContext(ctx, targetDir, false, &git.CloneOptions{
		URL:          project.URL,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %q from %s: %w", project.Name, project.URL, err)
	}
	return nil
}

// fetchPinnedCommit materializes an arbitrary historical commit. A shallow
// clone cannot fetch a commit by SHA on most hosts, so the checkout is
// built as init + fetch-single-commit + checkout.
func fetchPinnedCommit(ctx context.Context, project schema.Project, targetDir string) error {
	repo, err := git.PlainInit(targetDir, false)
	if err != nil {
		return fmt.Errorf("failed to init checkout for %q: %w", project.Name, err)
	}
	remote, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{project.URL},
	})
	if err != nil {
		return fmt.Errorf("failed to add remote for %q: %w", project.Name, err)
	}
	refSpec := gitconfig.RefSpec(project.Commit + ":" + pinnedBranch)
	if err := remote.FetchContext(ctx, &git.FetchOptions{
		RefSpecs: []gitconfig.RefSpec{refSpec},
		Depth:    1,
		Tags:     git.NoTags,
	}); err != nil {
		return fmt.Errorf("failed to fetch commit %s of %q: %w. Check that the commit exists on the remote", project.Commit, project.Name, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree for %q: %w", project.Name, err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(project.Commit)}); err != nil {
		return fmt.Errorf("failed to check out commit %s of %q: %w", project.Commit, project.Name, err)
	}
	return nil
}
