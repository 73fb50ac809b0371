// SPDX-License-Identifier: AGPL-3.0-or-later

// Package citation derives the paper front matter from a CITATION.cff file.
package citation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bids-standard/bidstools/internal/fsutil"
)

// ErrFirstAuthorMissing is returned when the requested first author is not in the author list.
var ErrFirstAuthorMissing = errors.New("first author not found in citation authors")

const orcidPrefix = "https://orcid.org/"

// Citation is the subset of the Citation File Format used here.
type Citation struct {
	Title    string   `yaml:"title"`
	Keywords []string `yaml:"keywords"`
	Authors  []Author `yaml:"authors"`
}

// Author is one CITATION.cff author entry.
type Author struct {
	GivenNames  string `yaml:"given-names"`
	FamilyNames string `yaml:"family-names"`
	ORCID       string `yaml:"orcid"`
	Affiliation string `yaml:"affiliation"`
}

// Metadata is the YAML front matter of the paper.
type Metadata struct {
	Title        string        `yaml:"title"`
	Tags         []string      `yaml:"tags"`
	Authors      []PaperAuthor `yaml:"authors"`
	Affiliations []Affiliation `yaml:"affiliations"`
	Date         string        `yaml:"date"`
	Bibliography string        `yaml:"bibliography"`
}

// PaperAuthor is an author as listed in the paper front matter.
type PaperAuthor struct {
	Name        string `yaml:"name"`
	ORCID       string `yaml:"orcid,omitempty"`
	Affiliation int    `yaml:"affiliation,omitempty"`
}

// Affiliation is an institution with its 1-based index.
type Affiliation struct {
	Name  string `yaml:"name"`
	Index int    `yaml:"index"`
}

// Options controls author ordering and the date stamp.
type Options struct {
	FirstAuthor        string
	SortAlphabetically bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Load reads a CITATION.cff file.
func Load(path string) (*Citation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading citation file: %w", err)
	}
	var c Citation
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &c, nil
}

// AuthorOrder returns the family names in paper order: optionally sorted,
// with first moved to the front.
func AuthorOrder(authors []Author, first string, sortNames bool) ([]string, error) {
	order := make([]string, 0, len(authors))
	for _, a := range authors {
		order = append(order, strings.TrimSpace(a.FamilyNames))
	}
	if sortNames {
		sort.Strings(order)
	}
	if first == "" {
		return order, nil
	}

	i := slices.Index(order, first)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFirstAuthorMissing, first)
	}
	order = slices.Delete(order, i, i+1)
	return slices.Insert(order, 0, first), nil
}

// BuildMetadata assembles the paper front matter.
func BuildMetadata(c *Citation, opts Options) (*Metadata, error) {
	order, err := AuthorOrder(c.Authors, opts.FirstAuthor, opts.SortAlphabetically)
	if err != nil {
		return nil, err
	}

	byFamily := make(map[string]Author, len(c.Authors))
	for _, a := range c.Authors {
		family := strings.TrimSpace(a.FamilyNames)
		// Duplicate family names resolve to the first entry.
		if _, ok := byFamily[family]; !ok {
			byFamily[family] = a
		}
	}

	m := &Metadata{
		Title:        "",
		Tags:         c.Keywords,
		Authors:      []PaperAuthor{},
		Affiliations: []Affiliation{},
		Bibliography: "paper.bib",
	}
	affIndex := map[string]int{}

	for _, family := range order {
		a := byFamily[family]
		pa := PaperAuthor{
			Name: strings.TrimSpace(a.GivenNames + " " + a.FamilyNames),
		}
		if a.ORCID != "" {
			pa.ORCID = strings.TrimPrefix(a.ORCID, orcidPrefix)
		}
		if a.Affiliation != "" {
			idx, ok := affIndex[a.Affiliation]
			if !ok {
				idx = len(m.Affiliations) + 1
				affIndex[a.Affiliation] = idx
				m.Affiliations = append(m.Affiliations, Affiliation{Name: a.Affiliation, Index: idx})
			}
			pa.Affiliation = idx
		}
		m.Authors = append(m.Authors, pa)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m.Date = now().Format(time.DateOnly)
	return m, nil
}

// Encode renders m as YAML with two-space indentation.
func Encode(m *Metadata) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteMetadata writes m to path.
func WriteMetadata(path string, m *Metadata) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return fsutil.WriteFile(path, data)
}
