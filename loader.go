// Package viewload discovers database views at runtime and synthesizes
// one read-only, composite-keyed record class descriptor per view.
//
// A Loader is bound to a backend by resolving its connection string
// against the dialect registry; LoadViews then enumerates the views
// visible through the connection, narrows them with include/exclude
// rules, and interns a Class for each, at most once per qualified name
// for the lifetime of the process.
//
//	loader, err := viewload.New(
//		viewload.Namespace("reports"),
//		viewload.Include(`^sales_`),
//		viewload.DSN("dbi:postgres:dbname=warehouse"),
//	)
//	if err != nil { ... }
//	names, err := loader.LoadViews(ctx)
package viewload

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/syssam/viewload/dialect"
)

// Handle is one cached connection, tagged with an identity so handle
// turnover stays observable across rebinds.
type Handle struct {
	// ID is unique per established or adopted handle.
	ID string
	// DB is the underlying connection pool.
	DB *sql.DB

	adopted bool
}

// Loader discovers views through one bound backend driver and holds
// the configuration that shapes the synthesized classes.
//
// A Loader starts unbound: driver-delegated operations fail with
// ErrNoHandlerLoaded until a dsn has resolved. Once bound it never
// reverts to unbound; setting a new dsn rebinds in place.
type Loader struct {
	mu sync.Mutex

	dsn      string
	username string
	password string
	options  map[string]string

	namespace       string
	include         *regexp.Regexp
	exclude         *regexp.Regexp
	baseClasses     []string
	leftBaseClasses []string
	importClasses   []ImportClass

	token  string
	driver dialect.Driver

	handle    *Handle
	keepalive bool

	warnHandler func(Warning)
	warnings    []Warning
	deferred    []deferredImport
}

// Option configures a Loader at construction. Every option applies
// through the same operation available after construction.
type Option func(*Loader) error

// DSN resolves and binds the driver for the given connection string.
// Place it after the options it should see applied; resolution runs
// when the option does.
func DSN(dsn string) Option {
	return func(l *Loader) error { return l.SetDSN(dsn) }
}

// Username sets the connection username.
func Username(name string) Option {
	return func(l *Loader) error { l.SetUsername(name); return nil }
}

// Password sets the connection password.
func Password(pw string) Option {
	return func(l *Loader) error { l.SetPassword(pw); return nil }
}

// Options sets driver options passed through to the backend.
func Options(opts map[string]string) Option {
	return func(l *Loader) error { l.SetOptions(opts); return nil }
}

// Namespace sets the namespace qualifying synthesized class names.
func Namespace(ns string) Option {
	return func(l *Loader) error { l.SetNamespace(ns); return nil }
}

// Include sets the include rule from a string or *regexp.Regexp.
func Include(pattern any) Option {
	return func(l *Loader) error { return l.SetInclude(pattern) }
}

// Exclude sets the exclude rule from a string or *regexp.Regexp.
func Exclude(pattern any) Option {
	return func(l *Loader) error { return l.SetExclude(pattern) }
}

// BaseClasses appends ancestry after the driver's record base.
func BaseClasses(names ...string) Option {
	return func(l *Loader) error { l.SetBaseClasses(names...); return nil }
}

// LeftBaseClasses prepends ancestry before the driver's record base.
func LeftBaseClasses(names ...string) Option {
	return func(l *Loader) error { l.SetLeftBaseClasses(names...); return nil }
}

// ImportClasses sets the import classes injected into every
// synthesized class.
func ImportClasses(classes ...ImportClass) Option {
	return func(l *Loader) error { l.SetImportClasses(classes...); return nil }
}

// Keepalive suppresses handle teardown on Close, for callers that keep
// using the handle after the loader is done.
func Keepalive() Option {
	return func(l *Loader) error { l.SetKeepalive(true); return nil }
}

// WarnHandler routes warnings to fn instead of accumulating them on
// the loader.
func WarnHandler(fn func(Warning)) Option {
	return func(l *Loader) error { l.warnHandler = fn; return nil }
}

// New returns a Loader with the given options applied in order.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// SetDSN parses the connection string for its driver token, resolves
// the token against the dialect registry, re-checks the handler's
// compliance, and rebinds the loader. The previously cached handle, if
// any, is torn down: it may be incompatible with the new driver. On
// failure the prior binding, dsn and handle all survive untouched.
func (l *Loader) SetDSN(dsn string) error {
	if dsn == "" {
		return ErrNoDSN
	}
	token, _, err := dialect.ParseDSN(dsn)
	if err != nil {
		return &InvalidDSNError{DSN: dsn, Cause: err}
	}
	d, ok := dialect.Lookup(token)
	if !ok {
		return &NoHandlerForDriverError{Token: token}
	}
	if err := dialect.Comply(d); err != nil {
		return &HandlerComplianceError{Token: token, Cause: err}
	}
	l.ClearHandle()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dsn = dsn
	l.token = token
	l.driver = d
	return nil
}

// DSN returns the connection string, verbatim as it was set.
func (l *Loader) DSN() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dsn
}

// Token returns the driver token parsed out of the current dsn, or ""
// while unbound.
func (l *Loader) Token() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token
}

// Driver returns the bound driver, or nil while unbound.
func (l *Loader) Driver() dialect.Driver {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.driver
}

// SetUsername sets the connection username.
func (l *Loader) SetUsername(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.username = name
}

// Username returns the connection username.
func (l *Loader) Username() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.username
}

// SetPassword sets the connection password.
func (l *Loader) SetPassword(pw string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.password = pw
}

// Password returns the connection password.
func (l *Loader) Password() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.password
}

// SetOptions copies the given driver options into the loader, so later
// mutation of the caller's map cannot alias into it.
func (l *Loader) SetOptions(opts map[string]string) {
	copied := make(map[string]string, len(opts))
	for k, v := range opts {
		copied[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.options = copied
}

// Options returns a copy of the driver options.
func (l *Loader) Options() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := make(map[string]string, len(l.options))
	for k, v := range l.options {
		copied[k] = v
	}
	return copied
}

// SetNamespace sets the namespace qualifying class names.
func (l *Loader) SetNamespace(ns string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.namespace = ns
}

// Namespace returns the namespace qualifying class names.
func (l *Loader) Namespace() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.namespace
}

// SetBaseClasses replaces the ancestry appended after the driver's
// record base.
func (l *Loader) SetBaseClasses(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseClasses = append([]string(nil), names...)
}

// BaseClasses returns the ancestry appended after the driver base.
func (l *Loader) BaseClasses() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.baseClasses...)
}

// SetLeftBaseClasses replaces the ancestry prepended before the
// driver's record base.
func (l *Loader) SetLeftBaseClasses(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.leftBaseClasses = append([]string(nil), names...)
}

// LeftBaseClasses returns the ancestry prepended before the driver
// base.
func (l *Loader) LeftBaseClasses() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.leftBaseClasses...)
}

// SetImportClasses replaces the import classes injected into every
// synthesized class.
func (l *Loader) SetImportClasses(classes ...ImportClass) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.importClasses = append([]ImportClass(nil), classes...)
}

// ImportClasses returns the configured import classes.
func (l *Loader) ImportClasses() []ImportClass {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ImportClass(nil), l.importClasses...)
}

// SetKeepalive controls whether Close tears the cached handle down.
func (l *Loader) SetKeepalive(keep bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keepalive = keep
}

// Keepalive reports whether handle teardown on Close is suppressed.
func (l *Loader) Keepalive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keepalive
}

// warn delivers a warning to the configured handler, or accumulates it
// on the loader when none is set.
func (l *Loader) warn(w Warning) {
	l.mu.Lock()
	handler := l.warnHandler
	if handler == nil {
		l.warnings = append(l.warnings, w)
	}
	l.mu.Unlock()
	if handler != nil {
		handler(w)
	}
}

// Warnings returns the warnings accumulated since the last reset.
func (l *Loader) Warnings() []Warning {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Warning(nil), l.warnings...)
}

// ResetWarnings drops the accumulated warnings.
func (l *Loader) ResetWarnings() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = nil
}

// Handle returns the cached connection handle, establishing one from
// the stored dsn and credentials if none is cached. The established
// handle is pinged so a connection failure surfaces here rather than
// on first use.
func (l *Loader) Handle(ctx context.Context) (*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handle != nil {
		return l.handle, nil
	}
	if l.driver == nil {
		return nil, ErrNoHandlerLoaded
	}
	_, rest, err := dialect.ParseDSN(l.dsn)
	if err != nil {
		return nil, &InvalidDSNError{DSN: l.dsn, Cause: err}
	}
	source := l.driver.DataSource(rest, l.username, l.password, l.options)
	db, err := sql.Open(l.driver.SQLDriver(), source)
	if err != nil {
		return nil, &ConnectionFailedError{DSN: l.dsn, Cause: err}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionFailedError{DSN: l.dsn, Cause: err}
	}
	l.handle = &Handle{ID: uuid.NewString(), DB: db}
	return l.handle, nil
}

// AdoptHandle caches an existing connection as the loader's handle,
// bypassing lazy establishment. Adopted handles stay owned by the
// caller: teardown drops them from the cache without closing them.
func (l *Loader) AdoptHandle(db *sql.DB) *Handle {
	l.ClearHandle()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handle = &Handle{ID: uuid.NewString(), DB: db, adopted: true}
	return l.handle
}

// ClearHandle tears down the cached handle: the bound driver releases
// any derived state first, then the handle is closed and dropped.
// It is a no-op when nothing is cached.
func (l *Loader) ClearHandle() error {
	l.mu.Lock()
	h := l.handle
	d := l.driver
	l.handle = nil
	l.mu.Unlock()
	if h == nil {
		return nil
	}
	var err error
	if releaser, ok := d.(dialect.HandleReleaser); ok {
		err = releaser.ReleaseHandle(h.DB)
	}
	if !h.adopted {
		if cerr := h.DB.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("viewload: handle teardown: %w", err)
	}
	return nil
}

// Close finalizes the loader, tearing the cached handle down unless
// keepalive is set.
func (l *Loader) Close() error {
	if l.Keepalive() {
		return nil
	}
	return l.ClearHandle()
}
