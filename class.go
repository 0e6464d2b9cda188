package viewload

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-openapi/inflect"
)

// segmentRe splits view names into the segments that become the words
// of a class name.
var segmentRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Class is the descriptor of one synthesized record class: the flat,
// read-only, composite-keyed mapping of a single database view.
//
// Classes are produced by Loader.Synthesize and interned in a
// process-wide registry; two requests for the same qualified name
// observe the same *Class.
type Class struct {
	// Name is the qualified identifier, namespace-prefixed.
	Name string
	// Table is the view name the class is bound to.
	Table string
	// Parents is the ordered ancestry: left base classes, the
	// driver's record base, then base classes.
	Parents []string
	// PrimaryKey lists every column of the view. A view is assumed to
	// have no natural unique key, so the whole row is the key.
	PrimaryKey []string
	// ReadOnly is always true for synthesized classes.
	ReadOnly bool
	// Imports names the import classes whose capabilities were applied.
	Imports []string

	handle *Handle
}

// Handle returns the connection handle the class was bound to at
// synthesis time.
func (c *Class) Handle() *Handle { return c.handle }

// Record is one row addressed through a class descriptor.
type Record struct {
	class  *Class
	values map[string]any
}

// NewRecord returns a record over c holding the given column values.
func NewRecord(c *Class, values map[string]any) *Record {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Record{class: c, values: copied}
}

// Class returns the descriptor the record belongs to.
func (r *Record) Class() *Class { return r.class }

// Get returns the value of one column and whether it is set.
func (r *Record) Get(column string) (any, bool) {
	v, ok := r.values[column]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set rejects mutation on read-only classes, which synthesized classes
// always are.
func (r *Record) Set(column string, value any) error {
	if r.class.ReadOnly {
		return ErrReadOnly
	}
	r.values[column] = value
	return nil
}

// IsZero reports whether the record is empty under the composite-key
// identity rule: true only when every key column is unset. A record
// with some nullable key columns unset is still a real row.
func (r *Record) IsZero() bool {
	for _, col := range r.class.PrimaryKey {
		if v, ok := r.values[col]; ok && v != nil {
			return false
		}
	}
	return true
}

// ViewToClass normalizes a view name into a class name and qualifies
// it with the loader's namespace: the view name is split on
// non-alphanumeric runs, each segment is capitalized, and the segments
// are concatenated. An empty view name yields the empty string even
// when a namespace is set, so naming can be probed without a view.
func (l *Loader) ViewToClass(view string) string {
	if view == "" {
		return ""
	}
	segments := segmentRe.Split(view, -1)
	nonempty := segments[:0]
	for _, s := range segments {
		if s != "" {
			nonempty = append(nonempty, s)
		}
	}
	name := inflect.Camelize(strings.Join(nonempty, "_"))
	if ns := l.Namespace(); ns != "" {
		return ns + "." + name
	}
	return name
}

// Process-wide class registry. Synthesis of one qualified name happens
// at most once per process, so check-then-insert is serialized here.
var (
	classesMu sync.Mutex
	classes   = make(map[string]*Class)
)

// Classes returns the sorted names of every class synthesized so far.
func Classes() []string {
	classesMu.Lock()
	defer classesMu.Unlock()
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupClass returns the synthesized class with the given qualified
// name, or false if none exists.
func LookupClass(name string) (*Class, bool) {
	classesMu.Lock()
	defer classesMu.Unlock()
	c, ok := classes[name]
	return c, ok
}

// ResetClasses empties the class registry. Views are never unloaded in
// normal operation; this exists for tests.
func ResetClasses() {
	classesMu.Lock()
	defer classesMu.Unlock()
	classes = make(map[string]*Class)
}
