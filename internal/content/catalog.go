package content

import (
	"sort"
	"strings"
)

// Domain groups related topics in the catalog.
type Domain string

const (
	DomainCS        Domain = "cs"
	DomainLanguages Domain = "languages"
	DomainDSA       Domain = "dsa"
	DomainWeb       Domain = "web"
	DomainFullstack Domain = "fullstack"
)

// DisplayName returns a human-readable label for the domain.
func (d Domain) DisplayName() string {
	switch d {
	case DomainCS:
		return "Computer Science"
	case DomainLanguages:
		return "Languages"
	case DomainDSA:
		return "Data Structures & Algorithms"
	case DomainWeb:
		return "Web"
	case DomainFullstack:
		return "Full Stack"
	default:
		return string(d)
	}
}

// Entry maps a topic ID to the bundle file that holds its content.
type Entry struct {
	ID     string `json:"id"`
	Domain Domain `json:"domain"`
	Path   string `json:"path"`
}

// Catalog resolves topic IDs to content paths. Lookups are case-insensitive.
type Catalog struct {
	entries []Entry
	byID    map[string]Entry
}

// NewCatalog builds a catalog from entries. Later duplicates replace earlier ones.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{byID: make(map[string]Entry, len(entries))}
	pos := make(map[string]int, len(entries))
	for _, e := range entries {
		key := normalizeID(e.ID)
		if i, dup := pos[key]; dup {
			c.entries[i] = e
		} else {
			pos[key] = len(c.entries)
			c.entries = append(c.entries, e)
		}
		c.byID[key] = e
	}
	return c
}

// Lookup returns the entry for topicID.
func (c *Catalog) Lookup(topicID string) (Entry, bool) {
	e, ok := c.byID[normalizeID(topicID)]
	return e, ok
}

// Entries returns all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByDomain groups entries by domain, each group in declaration order.
func (c *Catalog) ByDomain() map[Domain][]Entry {
	out := make(map[Domain][]Entry)
	for _, e := range c.entries {
		out[e.Domain] = append(out[e.Domain], e)
	}
	return out
}

// Domains returns the domains present in the catalog, sorted.
func (c *Catalog) Domains() []Domain {
	seen := make(map[Domain]bool)
	var out []Domain
	for _, e := range c.entries {
		if !seen[e.Domain] {
			seen[e.Domain] = true
			out = append(out, e.Domain)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// DefaultCatalog returns the built-in topic map. Not every listed topic ships
// content; missing files surface as quiz.ErrNotFound ("coming soon").
func DefaultCatalog() *Catalog {
	return NewCatalog([]Entry{
		{ID: "fundamentals of computer", Domain: DomainCS, Path: "cs/fundamentals.json"},
		{ID: "operating systems", Domain: DomainCS, Path: "cs/os.json"},
		{ID: "dbms", Domain: DomainCS, Path: "cs/dbms.json"},
		{ID: "computer networks", Domain: DomainCS, Path: "cs/networks.json"},

		{ID: "java", Domain: DomainLanguages, Path: "languages/java.json"},
		{ID: "python", Domain: DomainLanguages, Path: "languages/python.json"},
		{ID: "c", Domain: DomainLanguages, Path: "languages/c.json"},
		{ID: "sql", Domain: DomainLanguages, Path: "languages/sql.json"},
		{ID: "mongodb", Domain: DomainLanguages, Path: "languages/mongodb.json"},

		{ID: "basics", Domain: DomainDSA, Path: "dsa/basics.json"},
		{ID: "intermediate", Domain: DomainDSA, Path: "dsa/intermediate.json"},
		{ID: "advanced", Domain: DomainDSA, Path: "dsa/advanced.json"},

		{ID: "html", Domain: DomainWeb, Path: "web/html.json"},
		{ID: "css", Domain: DomainWeb, Path: "web/css.json"},
		{ID: "javascript (basics)", Domain: DomainWeb, Path: "web/js_basics.json"},
		{ID: "javascript (advanced)", Domain: DomainWeb, Path: "web/js_advanced.json"},

		{ID: "react", Domain: DomainFullstack, Path: "fullstack/react.json"},
		{ID: "node.js", Domain: DomainFullstack, Path: "fullstack/node.json"},
		{ID: "express", Domain: DomainFullstack, Path: "fullstack/express.json"},
		{ID: "full stack java", Domain: DomainFullstack, Path: "fullstack/java_fullstack.json"},
		{ID: "full stack python", Domain: DomainFullstack, Path: "fullstack/python_fullstack.json"},
		{ID: "mern stack", Domain: DomainFullstack, Path: "fullstack/mern.json"},
	})
}
