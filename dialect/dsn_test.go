package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn   string
		token string
		rest  string
	}{
		{"dbi:mock:whatever", "mock", "whatever"},
		{"dbi:postgres:dbname=warehouse host=db1", "postgres", "dbname=warehouse host=db1"},
		{"dbi:mock:", "mock", ""},
		{"dbi:sqlite:file.db?mode=ro", "sqlite", "file.db?mode=ro"},
		{"dbi:mysql:tcp(localhost:3306)/orders", "mysql", "tcp(localhost:3306)/orders"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			token, rest, err := ParseDSN(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseDSNEmpty(t *testing.T) {
	_, _, err := ParseDSN("")
	require.ErrorIs(t, err, ErrEmptyDSN)
}

func TestParseDSNMalformed(t *testing.T) {
	for _, dsn := range []string{
		"nonsense",
		"dbi:",
		"dbi:mock",
		"dbi::tail",
		":mock:tail",
	} {
		t.Run(dsn, func(t *testing.T) {
			_, _, err := ParseDSN(dsn)
			require.ErrorIs(t, err, ErrMalformedDSN)
		})
	}
}
