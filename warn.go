package viewload

import "fmt"

// Warning is a non-fatal condition observed during loading. Warnings
// never change control flow; a loader reports them through its warning
// handler and carries on.
type Warning interface {
	warning()
	String() string
}

// NoColumnsWarning reports a view that was skipped because it exposes
// no columns.
type NoColumnsWarning struct {
	View string
}

func (NoColumnsWarning) warning() {}

// String returns the warning text.
func (w NoColumnsWarning) String() string {
	return fmt.Sprintf("viewload: view %q has no columns, skipping", w.View)
}

// NoImportFunctionWarning reports an import-class entry that carries
// neither the Exporter nor the ImportInitializer capability.
type NoImportFunctionWarning struct {
	Module string
}

func (NoImportFunctionWarning) warning() {}

// String returns the warning text.
func (w NoImportFunctionWarning) String() string {
	return fmt.Sprintf("viewload: import class %q has no export or import function, skipping", w.Module)
}
