package viewload

import "sync"

// Exporter is the capability of an import class that pushes symbols or
// behavior into a synthesized class. Exports run immediately, in
// declaration order, as each class is synthesized.
type Exporter interface {
	ExportTo(c *Class) error
}

// ImportInitializer is the capability of an import class whose
// initialization is deferred: the loader accumulates (class, module)
// pairs during a load and flushes them in one ordered batch after
// every class of that load exists. Batching only amortizes cost; it
// changes neither ordering nor per-class scoping.
type ImportInitializer interface {
	ImportInto(c *Class) error
}

// ImportClass couples a name with the module value applied to
// synthesized classes. A module with neither capability triggers a
// NoImportFunctionWarning at synthesis time and is skipped.
type ImportClass struct {
	Name   string
	Module any
}

// Import-class registry, so map and file based construction can refer
// to modules by name.
var (
	importClassesMu sync.RWMutex
	importClasses   = make(map[string]any)
)

// RegisterImportClass makes a module available to NewFromMap and
// ConfigFromFile under the given name. Registering a name twice
// replaces the module.
func RegisterImportClass(name string, module any) {
	importClassesMu.Lock()
	defer importClassesMu.Unlock()
	importClasses[name] = module
}

func lookupImportClass(name string) ImportClass {
	importClassesMu.RLock()
	defer importClassesMu.RUnlock()
	return ImportClass{Name: name, Module: importClasses[name]}
}

// deferredImport is one queued plain import awaiting the batch flush.
type deferredImport struct {
	class  *Class
	module ImportInitializer
}

// inject applies the loader's import classes to a freshly synthesized
// class: exporters immediately, initializers deferred into the batch.
func (l *Loader) inject(c *Class) error {
	for _, ic := range l.importClasses {
		switch m := ic.Module.(type) {
		case Exporter:
			if err := m.ExportTo(c); err != nil {
				return err
			}
			c.Imports = append(c.Imports, ic.Name)
		case ImportInitializer:
			l.deferred = append(l.deferred, deferredImport{class: c, module: m})
			c.Imports = append(c.Imports, ic.Name)
		default:
			l.warn(NoImportFunctionWarning{Module: ic.Name})
		}
	}
	return nil
}

// flushImports runs the deferred batch in the order it was queued.
func (l *Loader) flushImports() error {
	queued := l.deferred
	l.deferred = nil
	for _, d := range queued {
		if err := d.module.ImportInto(d.class); err != nil {
			return err
		}
	}
	return nil
}
