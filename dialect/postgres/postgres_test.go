package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/viewload/dialect"
)

func TestRegistered(t *testing.T) {
	d, ok := dialect.Lookup(dialect.Postgres)
	require.True(t, ok)
	require.NoError(t, dialect.Comply(d))
}

func TestDataSource(t *testing.T) {
	d := Driver{}
	assert.Equal(t, "dbname=warehouse", d.DataSource("dbname=warehouse", "", "", nil))
	assert.Equal(t,
		"dbname=warehouse user=reporting password=secret",
		d.DataSource("dbname=warehouse", "reporting", "secret", nil),
	)
	assert.Equal(t,
		"dbname=warehouse user=reporting host=db1 sslmode=disable",
		d.DataSource("dbname=warehouse", "reporting", "", map[string]string{
			"sslmode": "disable",
			"host":    "db1",
		}),
	)
	assert.Equal(t, "user=reporting", d.DataSource("", "reporting", "", nil))
}

func TestViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.views").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("daily_totals").
			AddRow("sales_by_region"))

	views, err := Driver{}.Views(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"daily_totals", "sales_by_region"}, views)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestViewColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("daily_totals").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("day").
			AddRow("total"))

	columns, err := Driver{}.ViewColumns(context.Background(), db, "daily_totals")
	require.NoError(t, err)
	assert.Equal(t, []string{"day", "total"}, columns)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestViewsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM information_schema.views").
		WillReturnError(assert.AnError)

	_, err = Driver{}.Views(context.Background(), db)
	require.ErrorIs(t, err, assert.AnError)
}
