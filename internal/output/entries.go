package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"fexplorer/internal/entry"
)

// EntrySink consumes a stream of walk entries. Close signals
// end-of-stream and flushes whatever the format buffered.
type EntrySink interface {
	WriteEntry(e entry.Entry) error
	Close() error
}

// NewEntrySink builds a sink for the format writing to w.
func NewEntrySink(format Format, w io.Writer) (EntrySink, error) {
	switch format {
	case FormatPretty:
		return &prettyEntrySink{w: w}, nil
	case FormatJSON:
		return &jsonEntrySink{w: w}, nil
	case FormatNDJSON:
		return &ndjsonEntrySink{enc: json.NewEncoder(w)}, nil
	case FormatCSV:
		return &csvEntrySink{cw: csv.NewWriter(w)}, nil
	case FormatYAML:
		return &yamlEntrySink{w: w}, nil
	}
	return nil, fmt.Errorf("unsupported entry format %q", format)
}

// prettyEntrySink buffers everything, sorts by path, and renders an
// aligned table. Traversal order is arbitrary; the table is not.
type prettyEntrySink struct {
	w       io.Writer
	entries []entry.Entry
}

func (s *prettyEntrySink) WriteEntry(e entry.Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *prettyEntrySink) Close() error {
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Path < s.entries[j].Path
	})

	tw := tabwriter.NewWriter(s.w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tSIZE\tMODIFIED")
	for _, e := range s.entries {
		size := ""
		if e.Kind != entry.KindDir {
			size = formatSize(e.Size)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Path, e.Kind, size, e.Mtime.Format(time.RFC3339))
	}
	return tw.Flush()
}

type jsonEntrySink struct {
	w       io.Writer
	entries []entry.Entry
}

func (s *jsonEntrySink) WriteEntry(e entry.Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *jsonEntrySink) Close() error {
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Path < s.entries[j].Path
	})
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.entries)
}

type ndjsonEntrySink struct {
	enc *json.Encoder
}

func (s *ndjsonEntrySink) WriteEntry(e entry.Entry) error {
	return s.enc.Encode(e)
}

func (s *ndjsonEntrySink) Close() error {
	return nil
}

type csvEntrySink struct {
	cw     *csv.Writer
	header bool
}

var entryCSVHeader = []string{"path", "name", "kind", "size", "mtime", "depth"}

func (s *csvEntrySink) WriteEntry(e entry.Entry) error {
	if !s.header {
		if err := s.cw.Write(entryCSVHeader); err != nil {
			return err
		}
		s.header = true
	}
	return s.cw.Write([]string{
		e.Path,
		e.Name,
		string(e.Kind),
		strconv.FormatInt(e.Size, 10),
		e.Mtime.Format(time.RFC3339),
		strconv.Itoa(e.Depth),
	})
}

func (s *csvEntrySink) Close() error {
	s.cw.Flush()
	return s.cw.Error()
}

type yamlEntrySink struct {
	w       io.Writer
	entries []entry.Entry
}

func (s *yamlEntrySink) WriteEntry(e entry.Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *yamlEntrySink) Close() error {
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Path < s.entries[j].Path
	})
	enc := yaml.NewEncoder(s.w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(s.entries)
}
