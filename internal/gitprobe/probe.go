// Package gitprobe extracts repository state by reading the object
// store directly through go-git. The probe is read-only, never locks
// the repository, and never spawns a subprocess.
package gitprobe

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"fexplorer/internal/errors"
)

// shortHashLen is the abbreviated commit hash length.
const shortHashLen = 7

// messageMaxLen truncates the first line of a commit message.
const messageMaxLen = 120

// ancestorLimit bounds the commit walk used for ahead/behind counting
// so a huge history cannot stall a sync.
const ancestorLimit = 2000

// Commit describes the HEAD commit of a repository.
type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is the probed state of one repository.
type Status struct {
	CurrentBranch  string  `json:"current_branch"`
	HasUncommitted bool    `json:"has_uncommitted"`
	Ahead          int     `json:"ahead"`
	Behind         int     `json:"behind"`
	LastCommit     *Commit `json:"last_commit,omitempty"`
}

// IsRepo reports whether path contains a .git directory.
func IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, git.GitDirName))
	return err == nil && info.IsDir()
}

// Probe reads the current state of the repository at repoPath.
// Failure modes: GitNotARepo when there is no repository, GitCorrupt
// when the object store is unreadable, GitTransientIO for everything
// the filesystem did wrong.
func Probe(repoPath string) (*Status, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, errors.New(errors.GitNotARepo, "not a git repository: "+repoPath, err)
		}
		return nil, errors.New(errors.GitTransientIO, "opening repository: "+repoPath, err)
	}

	status := &Status{}

	head, err := repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			// Unborn branch: report its symbolic name, nothing else to read.
			status.CurrentBranch = unbornBranchName(repo)
			status.HasUncommitted = worktreeDirty(repo)
			return status, nil
		}
		return nil, errors.New(errors.GitCorrupt, "resolving HEAD: "+repoPath, err)
	}

	if head.Name().IsBranch() {
		status.CurrentBranch = head.Name().Short()
	} else {
		// Detached HEAD: short hash stands in for the branch name.
		status.CurrentBranch = head.Hash().String()[:shortHashLen]
	}

	status.HasUncommitted = worktreeDirty(repo)

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.New(errors.GitCorrupt, "reading HEAD commit: "+repoPath, err)
	}
	status.LastCommit = &Commit{
		Hash:      commit.Hash.String()[:shortHashLen],
		Message:   firstLine(commit.Message, messageMaxLen),
		Author:    commit.Author.Name,
		Timestamp: commit.Committer.When,
	}

	if head.Name().IsBranch() {
		status.Ahead, status.Behind = aheadBehind(repo, head)
	}

	return status, nil
}

// worktreeDirty reports whether any tracked file is modified, added,
// deleted, or renamed, or any untracked-not-ignored file exists.
// Unreadable worktrees count as clean; the caller still gets the rest
// of the status.
func worktreeDirty(repo *git.Repository) bool {
	wt, err := repo.Worktree()
	if err != nil {
		return false
	}
	st, err := wt.Status()
	if err != nil {
		return false
	}
	return !st.IsClean()
}

// unbornBranchName resolves the symbolic target of HEAD before the
// first commit exists.
func unbornBranchName(repo *git.Repository) string {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return ""
	}
	return ref.Target().Short()
}

// aheadBehind counts commits between HEAD and its configured upstream.
// Both counts are zero when no upstream is configured or the tracking
// ref is missing.
func aheadBehind(repo *git.Repository, head *plumbing.Reference) (int, int) {
	cfg, err := repo.Config()
	if err != nil {
		return 0, 0
	}
	branchCfg, ok := cfg.Branches[head.Name().Short()]
	if !ok || branchCfg.Remote == "" {
		return 0, 0
	}

	trackingName := plumbing.NewRemoteReferenceName(branchCfg.Remote, branchCfg.Merge.Short())
	tracking, err := repo.Reference(trackingName, true)
	if err != nil {
		return 0, 0
	}

	localSet, err := ancestorSet(repo, head.Hash())
	if err != nil {
		return 0, 0
	}
	remoteSet, err := ancestorSet(repo, tracking.Hash())
	if err != nil {
		return 0, 0
	}

	ahead, behind := 0, 0
	for h := range localSet {
		if _, shared := remoteSet[h]; !shared {
			ahead++
		}
	}
	for h := range remoteSet {
		if _, shared := localSet[h]; !shared {
			behind++
		}
	}
	return ahead, behind
}

// ancestorSet collects the commit hashes reachable from start,
// including start itself, bounded by ancestorLimit.
func ancestorSet(repo *git.Repository, start plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	commit, err := repo.CommitObject(start)
	if err != nil {
		return nil, err
	}

	seen := make(map[plumbing.Hash]struct{})
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		if len(seen) >= ancestorLimit {
			return storer.ErrStop
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// firstLine returns the first line of s, truncated to max runes.
func firstLine(s string, max int) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	runes := []rune(s)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes)
}
