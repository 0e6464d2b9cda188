package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/viewload/dialect"
)

func TestRegistered(t *testing.T) {
	d, ok := dialect.Lookup(dialect.MySQL)
	require.True(t, ok)
	require.NoError(t, dialect.Comply(d))
}

func TestDataSource(t *testing.T) {
	d := Driver{}
	assert.Equal(t, "tcp(db1:3306)/orders", d.DataSource("tcp(db1:3306)/orders", "", "", nil))
	assert.Equal(t,
		"reporting:secret@tcp(db1:3306)/orders",
		d.DataSource("tcp(db1:3306)/orders", "reporting", "secret", nil),
	)
	assert.Equal(t,
		"reporting@tcp(db1:3306)/orders?charset=utf8mb4&parseTime=true",
		d.DataSource("tcp(db1:3306)/orders", "reporting", "", map[string]string{
			"parseTime": "true",
			"charset":   "utf8mb4",
		}),
	)
	assert.Equal(t,
		"/orders?a=1&b=2",
		d.DataSource("/orders?a=1", "", "", map[string]string{"b": "2"}),
	)
}

func TestViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.views").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("open_orders"))

	views, err := Driver{}.Views(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"open_orders"}, views)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestViewColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("open_orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("id").
			AddRow("status"))

	columns, err := Driver{}.ViewColumns(context.Background(), db, "open_orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "status"}, columns)
	require.NoError(t, mock.ExpectationsWereMet())
}
