package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/kisansaathi/kisansaathi-backend/internal/domain"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

//go:embed schemes.yaml
var embeddedFS embed.FS

const embeddedName = "schemes.yaml"

// Catalog is the read-only set of scheme records. Implementations must be
// safe for concurrent readers and return records in catalog order.
type Catalog interface {
	All() []domain.SchemeRecord
	Head(n int) []domain.SchemeRecord
	ByID(id int) (domain.SchemeRecord, bool)
	Len() int
}

type document struct {
	Schemes []domain.SchemeRecord `yaml:"schemes"`
}

// Static is an in-memory Catalog built once from a list of records.
type Static struct {
	records []domain.SchemeRecord
	byID    map[int]int
}

var _ Catalog = (*Static)(nil)

// New validates records and returns a Static catalog over a private copy.
func New(records []domain.SchemeRecord) (*Static, error) {
	out := make([]domain.SchemeRecord, 0, len(records))
	byID := make(map[int]int, len(records))
	for i, r := range records {
		if r.ID <= 0 {
			return nil, fmt.Errorf("scheme #%d: id must be positive, got %d", i, r.ID)
		}
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("scheme %d: title is required", r.ID)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("scheme %d: duplicate id", r.ID)
		}
		byID[r.ID] = len(out)
		out = append(out, normalizeRecord(r))
	}
	return &Static{records: out, byID: byID}, nil
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) (*Static, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode scheme catalog: %w", err)
	}
	if len(doc.Schemes) == 0 {
		return nil, errors.New("scheme catalog is empty")
	}
	return New(doc.Schemes)
}

// Load reads the catalog from path, or from the embedded default when path
// is empty.
func Load(log *logger.Logger, path string) (*Static, error) {
	path = strings.TrimSpace(path)
	var (
		raw    []byte
		err    error
		source = path
	)
	if path == "" {
		source = "embedded:" + embeddedName
		raw, err = embeddedFS.ReadFile(embeddedName)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read scheme catalog %s: %w", source, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if log != nil {
		log.Info("Scheme catalog loaded", "source", source, "schemes", c.Len())
	}
	return c, nil
}

// All returns a copy of every record in catalog order.
func (c *Static) All() []domain.SchemeRecord {
	return c.Head(len(c.records))
}

// Head returns a copy of the first n records in catalog order.
func (c *Static) Head(n int) []domain.SchemeRecord {
	if n > len(c.records) {
		n = len(c.records)
	}
	if n <= 0 {
		return []domain.SchemeRecord{}
	}
	out := make([]domain.SchemeRecord, n)
	for i, r := range c.records[:n] {
		out[i] = cloneRecord(r)
	}
	return out
}

func (c *Static) ByID(id int) (domain.SchemeRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.SchemeRecord{}, false
	}
	return cloneRecord(c.records[i]), true
}

// cloneRecord detaches the list fields so callers cannot write through to
// the shared catalog.
func cloneRecord(r domain.SchemeRecord) domain.SchemeRecord {
	r.Benefits = slices.Clone(r.Benefits)
	r.Eligibility = slices.Clone(r.Eligibility)
	r.Keywords = slices.Clone(r.Keywords)
	r.DocumentsRequired = slices.Clone(r.DocumentsRequired)
	return r
}

func (c *Static) Len() int { return len(c.records) }

// normalizeRecord trims and NFC-normalises every text field. List fields are
// copied and blank entries removed.
func normalizeRecord(r domain.SchemeRecord) domain.SchemeRecord {
	r.Title = normText(r.Title)
	r.Objective = normText(r.Objective)
	r.Description = normText(r.Description)
	r.ApplicationProcess = normText(r.ApplicationProcess)
	r.Website = strings.TrimSpace(r.Website)
	r.Benefits = normList(r.Benefits)
	r.Eligibility = normList(r.Eligibility)
	r.Keywords = normList(r.Keywords)
	r.DocumentsRequired = normList(r.DocumentsRequired)
	return r
}

func normText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = normText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
