package viewload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/viewload"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfigFromFile(t *testing.T) {
	resetMock(t, "config_basic", nil, nil)
	path := writeConfig(t, `
dsn: "dbi:mock:database=orders"
user: reporting
namespace: orders
include: ^order_
options:
  sslmode: disable
base_classes:
  - app.Cached
`)
	l, err := viewload.ConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dbi:mock:database=orders", l.DSN())
	assert.Equal(t, "reporting", l.Username())
	assert.Equal(t, "orders", l.Namespace())
	assert.Equal(t, map[string]string{"sslmode": "disable"}, l.Options())
	assert.True(t, l.Include().MatchString("order_items"))
	assert.Equal(t, []string{"app.Cached"}, l.BaseClasses())
}

func TestConfigFromFileImportClasses(t *testing.T) {
	viewload.RegisterImportClass("config_audit", exporterFunc(func(*viewload.Class) error { return nil }))
	path := writeConfig(t, `
namespace: audited
import_classes:
  - config_audit
`)
	l, err := viewload.ConfigFromFile(path)
	require.NoError(t, err)
	require.Len(t, l.ImportClasses(), 1)
	assert.Equal(t, "config_audit", l.ImportClasses()[0].Name)
	assert.NotNil(t, l.ImportClasses()[0].Module)
}

func TestConfigFromFileUnrecognisedKey(t *testing.T) {
	path := writeConfig(t, "bogus: true\n")
	_, err := viewload.ConfigFromFile(path)
	require.True(t, viewload.IsUnrecognisedArguments(err))
}

func TestConfigFromFileMissing(t *testing.T) {
	_, err := viewload.ConfigFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfigFromFileMalformed(t *testing.T) {
	path := writeConfig(t, "dsn: [unterminated\n")
	_, err := viewload.ConfigFromFile(path)
	require.Error(t, err)
}
