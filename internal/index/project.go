package index

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fexplorer/internal/frecency"
	"fexplorer/internal/gitprobe"
)

// excerptMaxLen truncates the README excerpt.
const excerptMaxLen = 200

// readmeNames are tried in order when extracting the excerpt.
var readmeNames = []string{"README.md", "README.MD", "readme.md", "README", "Readme.md"}

// Project is a git repository surfaced by the index, merged with its
// access history. Git is nil when the repository could not be probed;
// such projects are retained in a git-unknown state.
type Project struct {
	Path          string           `json:"path"`
	Name          string           `json:"name"`
	Git           *gitprobe.Status `json:"git,omitempty"`
	ReadmeExcerpt string           `json:"readme_excerpt,omitempty"`
	AccessCount   int              `json:"access_count"`
	LastAccessed  *time.Time       `json:"last_accessed,omitempty"`
	FrecencyScore float64          `json:"frecency_score"`
}

// RecomputeFrecency rederives the score from the stored access fields.
// The stored score is a cache, never the source of truth.
func (p *Project) RecomputeFrecency(now time.Time) {
	p.FrecencyScore = frecency.Score(p.AccessCount, p.LastAccessed, now)
}

// newProject builds a project for a discovered repository root.
func newProject(canonicalPath string, git *gitprobe.Status) *Project {
	return &Project{
		Path:          canonicalPath,
		Name:          filepath.Base(canonicalPath),
		Git:           git,
		ReadmeExcerpt: readmeExcerpt(canonicalPath),
	}
}

// readmeExcerpt returns the first non-empty line of the repository's
// README with markdown heading markers stripped, truncated to 200
// characters. Empty when no README exists.
func readmeExcerpt(repoPath string) string {
	for _, name := range readmeNames {
		f, err := os.Open(filepath.Join(repoPath, name))
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			line = strings.TrimSpace(strings.TrimLeft(line, "#"))
			if line == "" {
				continue
			}
			_ = f.Close()
			runes := []rune(line)
			if len(runes) > excerptMaxLen {
				runes = runes[:excerptMaxLen]
			}
			return string(runes)
		}
		_ = f.Close()
	}
	return ""
}
