package gitprobe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"fexplorer/internal/errors"
)

func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  time.Now(),
	}
}

// initRepo creates a repository with one committed file and returns it
// with the commit hash.
func initRepo(t *testing.T, dir string) (*git.Repository, plumbing.Hash) {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("file.txt"); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit("initial commit", &git.CommitOptions{Author: testSignature()})
	if err != nil {
		t.Fatal(err)
	}
	return repo, hash
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	if IsRepo(dir) {
		t.Error("plain dir should not be a repo")
	}

	initRepo(t, dir)
	if !IsRepo(dir) {
		t.Error("initialized dir should be a repo")
	}
}

func TestProbe_NotARepo(t *testing.T) {
	_, err := Probe(t.TempDir())
	if err == nil {
		t.Fatal("Probe on a plain dir should fail")
	}
	if !errors.IsCode(err, errors.GitNotARepo) {
		t.Errorf("error code = %s, want GIT_NOT_A_REPO", errors.CodeOf(err))
	}
}

func TestProbe_CleanRepo(t *testing.T) {
	dir := t.TempDir()
	_, hash := initRepo(t, dir)

	status, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	if status.CurrentBranch != "master" {
		t.Errorf("CurrentBranch = %q, want master", status.CurrentBranch)
	}
	if status.HasUncommitted {
		t.Error("fresh commit should be clean")
	}
	if status.Ahead != 0 || status.Behind != 0 {
		t.Errorf("no upstream should give ahead=0 behind=0, got %d/%d", status.Ahead, status.Behind)
	}
	if status.LastCommit == nil {
		t.Fatal("LastCommit should be set")
	}
	if status.LastCommit.Hash != hash.String()[:shortHashLen] {
		t.Errorf("Hash = %q, want %q", status.LastCommit.Hash, hash.String()[:shortHashLen])
	}
	if status.LastCommit.Message != "initial commit" {
		t.Errorf("Message = %q, want %q", status.LastCommit.Message, "initial commit")
	}
	if status.LastCommit.Author != "Test Author" {
		t.Errorf("Author = %q, want %q", status.LastCommit.Author, "Test Author")
	}
}

func TestProbe_UntrackedMakesDirty(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	status, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if !status.HasUncommitted {
		t.Error("untracked file should set HasUncommitted")
	}
}

func TestProbe_ModifiedMakesDirty(t *testing.T) {
	dir := t.TempDir()
	initRepo(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	status, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if !status.HasUncommitted {
		t.Error("modified file should set HasUncommitted")
	}
}

func TestProbe_MessageTruncation(t *testing.T) {
	dir := t.TempDir()
	repo, _ := initRepo(t, dir)

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "second.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("second.txt"); err != nil {
		t.Fatal(err)
	}
	long := strings.Repeat("a", 200) + "\nsecond line"
	if _, err := wt.Commit(long, &git.CommitOptions{Author: testSignature()}); err != nil {
		t.Fatal(err)
	}

	status, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if got := len(status.LastCommit.Message); got != messageMaxLen {
		t.Errorf("message length = %d, want %d", got, messageMaxLen)
	}
	if strings.Contains(status.LastCommit.Message, "second line") {
		t.Error("only the first line should be kept")
	}
}

func TestProbe_AheadBehind(t *testing.T) {
	dir := t.TempDir()
	repo, first := initRepo(t, dir)

	// Second commit on master.
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "more.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("more.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Commit("second", &git.CommitOptions{Author: testSignature()}); err != nil {
		t.Fatal(err)
	}

	// Upstream tracking ref pinned at the first commit.
	cfg, err := repo.Config()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Branches["master"] = &config.Branch{
		Name:   "master",
		Remote: "origin",
		Merge:  plumbing.NewBranchReferenceName("master"),
	}
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
	trackingRef := plumbing.NewHashReference(
		plumbing.NewRemoteReferenceName("origin", "master"), first)
	if err := repo.Storer.SetReference(trackingRef); err != nil {
		t.Fatal(err)
	}

	status, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if status.Ahead != 1 {
		t.Errorf("Ahead = %d, want 1", status.Ahead)
	}
	if status.Behind != 0 {
		t.Errorf("Behind = %d, want 0", status.Behind)
	}
}

func TestProbe_UnbornBranch(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}

	status, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe() on unborn branch error = %v", err)
	}
	if status.LastCommit != nil {
		t.Error("unborn branch has no last commit")
	}
	if status.CurrentBranch != "master" {
		t.Errorf("CurrentBranch = %q, want master", status.CurrentBranch)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"one line", 120, "one line"},
		{"first\nsecond", 120, "first"},
		{"abcdef", 3, "abc"},
		{"", 120, ""},
	}

	for _, tt := range tests {
		if got := firstLine(tt.in, tt.max); got != tt.want {
			t.Errorf("firstLine(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
