package viewload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/viewload"
)

func TestNewFromMap(t *testing.T) {
	resetMock(t, "map_basic", nil, nil)
	l, err := viewload.NewFromMap(map[string]any{
		"dsn":               "dbi:mock:database=orders",
		"username":          "reporting",
		"password":          "secret",
		"namespace":         "orders",
		"options":           map[string]string{"sslmode": "disable"},
		"include":           `^order_`,
		"exclude":           `_raw$`,
		"base_classes":      []string{"app.Cached"},
		"left_base_classes": []string{"app.Audited"},
	})
	require.NoError(t, err)
	assert.Equal(t, "dbi:mock:database=orders", l.DSN())
	assert.Equal(t, "reporting", l.Username())
	assert.Equal(t, "secret", l.Password())
	assert.Equal(t, "orders", l.Namespace())
	assert.Equal(t, map[string]string{"sslmode": "disable"}, l.Options())
	assert.NotNil(t, l.Include())
	assert.NotNil(t, l.Exclude())
	assert.Equal(t, []string{"app.Cached"}, l.BaseClasses())
	assert.Equal(t, []string{"app.Audited"}, l.LeftBaseClasses())
}

func TestNewFromMapAliases(t *testing.T) {
	resetMock(t, "map_aliases", nil, nil)
	l, err := viewload.NewFromMap(map[string]any{
		"dsn":                     "dbi:mock:",
		"user":                    "legacy",
		"constraint":              `^sales_`,
		"additional_base_classes": []string{"app.Extra"},
		"additional_classes":      []string{"audit"},
	})
	require.NoError(t, err)
	assert.Equal(t, "legacy", l.Username())
	assert.True(t, l.Include().MatchString("sales_daily"))
	assert.Equal(t, []string{"app.Extra"}, l.BaseClasses())
	require.Len(t, l.ImportClasses(), 1)
	assert.Equal(t, "audit", l.ImportClasses()[0].Name)
}

func TestNewFromMapIgnoresLegacyNoOps(t *testing.T) {
	l, err := viewload.NewFromMap(map[string]any{
		"namespace":     "legacy",
		"debug":         true,
		"relationships": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "legacy", l.Namespace())
}

func TestNewFromMapUnrecognisedArguments(t *testing.T) {
	_, err := viewload.NewFromMap(map[string]any{
		"namespace": "x",
		"zebra":     1,
		"aardvark":  2,
	})
	require.True(t, viewload.IsUnrecognisedArguments(err))
	var uerr *viewload.UnrecognisedArgumentsError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, []string{"aardvark", "zebra"}, uerr.Keys)
	assert.Equal(t, "viewload: unrecognised arguments: aardvark, zebra", err.Error())
}

func TestNewFromMapBadPattern(t *testing.T) {
	_, err := viewload.NewFromMap(map[string]any{"include": 42})
	require.True(t, viewload.IsInvalidPatternType(err))
}

func TestNewFromMapBadValueType(t *testing.T) {
	_, err := viewload.NewFromMap(map[string]any{"username": 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}
