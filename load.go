package viewload

import (
	"context"
	"errors"
)

// Synthesize materializes the class for one view, or returns the
// already-interned class when the qualified name has been synthesized
// before. A cache hit runs no side effects: no connection binding and
// no import injection.
//
// Synthesis of a given name is serialized process-wide, so two loaders
// racing on the same (namespace, view) pair still produce exactly one
// class.
func (l *Loader) Synthesize(ctx context.Context, view string, columns []string) (*Class, error) {
	name := l.ViewToClass(view)

	classesMu.Lock()
	defer classesMu.Unlock()
	if c, ok := classes[name]; ok {
		return c, nil
	}

	d := l.Driver()
	if d == nil {
		return nil, ErrNoHandlerLoaded
	}
	base := d.RecordBase()
	if base == "" {
		return nil, &HandlerComplianceError{Token: l.Token(), Cause: errors.New("dialect: driver has no record base type")}
	}

	left, bases := l.LeftBaseClasses(), l.BaseClasses()
	parents := make([]string, 0, len(left)+1+len(bases))
	parents = append(parents, left...)
	parents = append(parents, base)
	parents = append(parents, bases...)

	// Bind a connection: the cached or adopted handle when one exists,
	// otherwise one established from the loader's own credentials.
	h, err := l.Handle(ctx)
	if err != nil {
		return nil, err
	}

	c := &Class{
		Name:       name,
		Table:      view,
		Parents:    parents,
		PrimaryKey: append([]string(nil), columns...),
		ReadOnly:   true,
		handle:     h,
	}
	if err := l.inject(c); err != nil {
		return nil, err
	}
	classes[name] = c
	return c, nil
}

// LoadViews runs the whole pipeline: enumerate the views visible
// through the bound driver, narrow them with the include/exclude
// rules, synthesize a class per surviving view, flush the deferred
// import batch, and return the qualified class names in enumeration
// order.
//
// A view with no columns is skipped with a NoColumnsWarning and is
// absent from the result; a view whose class already exists
// contributes its existing name. Calling LoadViews again re-enumerates
// and re-filters, but synthesis stays idempotent per view.
func (l *Loader) LoadViews(ctx context.Context) ([]string, error) {
	d := l.Driver()
	if d == nil {
		return nil, ErrNoHandlerLoaded
	}
	h, err := l.Handle(ctx)
	if err != nil {
		return nil, err
	}
	views, err := d.Views(ctx, h.DB)
	if err != nil {
		return nil, err
	}
	views = l.FilterViews(views)

	names := make([]string, 0, len(views))
	for _, view := range views {
		columns, err := d.ViewColumns(ctx, h.DB, view)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			l.warn(NoColumnsWarning{View: view})
			continue
		}
		c, err := l.Synthesize(ctx, view, columns)
		if err != nil {
			return nil, err
		}
		names = append(names, c.Name)
	}
	if err := l.flushImports(); err != nil {
		return nil, err
	}
	return names, nil
}
