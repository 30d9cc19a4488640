package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"fexplorer/internal/index"
)

// ProjectSink consumes a stream of ranked projects. Projects arrive
// already ordered; sinks preserve that order.
type ProjectSink interface {
	WriteProject(p *index.Project) error
	Close() error
}

// NewProjectSink builds a sink for the format writing to w.
func NewProjectSink(format Format, w io.Writer) (ProjectSink, error) {
	switch format {
	case FormatPretty:
		return &prettyProjectSink{w: w}, nil
	case FormatJSON:
		return &jsonProjectSink{w: w}, nil
	case FormatNDJSON:
		return &ndjsonProjectSink{enc: json.NewEncoder(w)}, nil
	case FormatCSV:
		return &csvProjectSink{cw: csv.NewWriter(w)}, nil
	case FormatYAML:
		return &yamlProjectSink{w: w}, nil
	}
	return nil, fmt.Errorf("unsupported project format %q", format)
}

type prettyProjectSink struct {
	w        io.Writer
	projects []*index.Project
}

func (s *prettyProjectSink) WriteProject(p *index.Project) error {
	s.projects = append(s.projects, p)
	return nil
}

func (s *prettyProjectSink) Close() error {
	tw := tabwriter.NewWriter(s.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tBRANCH\tSTATUS\tSCORE")
	for _, p := range s.projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\n",
			truncate(p.Name, 30), truncate(branchOf(p), 20), statusOf(p), p.FrecencyScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.w, "\nTotal: %d projects\n", len(s.projects))
	return err
}

// branchOf renders the branch column for one project row.
func branchOf(p *index.Project) string {
	if p.Git == nil {
		return "-"
	}
	return p.Git.CurrentBranch
}

// statusOf renders the one-word status column.
func statusOf(p *index.Project) string {
	switch {
	case p.Git == nil:
		return "unknown"
	case p.Git.HasUncommitted:
		return "changes"
	case p.Git.Ahead > 0:
		return "ahead"
	case p.Git.Behind > 0:
		return "behind"
	default:
		return "clean"
	}
}

type jsonProjectSink struct {
	w        io.Writer
	projects []*index.Project
}

func (s *jsonProjectSink) WriteProject(p *index.Project) error {
	s.projects = append(s.projects, p)
	return nil
}

func (s *jsonProjectSink) Close() error {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.projects)
}

type ndjsonProjectSink struct {
	enc *json.Encoder
}

func (s *ndjsonProjectSink) WriteProject(p *index.Project) error {
	return s.enc.Encode(p)
}

func (s *ndjsonProjectSink) Close() error {
	return nil
}

type csvProjectSink struct {
	cw     *csv.Writer
	header bool
}

var projectCSVHeader = []string{"path", "name", "branch", "status", "access_count", "last_accessed", "frecency_score"}

func (s *csvProjectSink) WriteProject(p *index.Project) error {
	if !s.header {
		if err := s.cw.Write(projectCSVHeader); err != nil {
			return err
		}
		s.header = true
	}
	lastAccessed := ""
	if p.LastAccessed != nil {
		lastAccessed = p.LastAccessed.Format(time.RFC3339)
	}
	return s.cw.Write([]string{
		p.Path,
		p.Name,
		branchOf(p),
		statusOf(p),
		strconv.Itoa(p.AccessCount),
		lastAccessed,
		strconv.FormatFloat(p.FrecencyScore, 'f', 2, 64),
	})
}

func (s *csvProjectSink) Close() error {
	s.cw.Flush()
	return s.cw.Error()
}

type yamlProjectSink struct {
	w        io.Writer
	projects []*index.Project
}

func (s *yamlProjectSink) WriteProject(p *index.Project) error {
	s.projects = append(s.projects, p)
	return nil
}

func (s *yamlProjectSink) Close() error {
	enc := yaml.NewEncoder(s.w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(s.projects)
}
