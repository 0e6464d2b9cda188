package viewload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/viewload"
)

func TestViewToClass(t *testing.T) {
	tests := []struct {
		view      string
		namespace string
		want      string
	}{
		{"my_view", "naming", "naming.MyView"},
		{"my_view", "", "MyView"},
		{"daily_totals", "reports", "reports.DailyTotals"},
		{"sales.by-region", "", "SalesByRegion"},
		{"__padded__", "", "Padded"},
		// An empty view name yields an empty identifier even with a
		// namespace set; callers probe naming with it.
		{"", "naming", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.view+"/"+tt.namespace, func(t *testing.T) {
			l, err := viewload.New(viewload.Namespace(tt.namespace))
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.ViewToClass(tt.view))
		})
	}
}

func TestRecordCompositeKeyRule(t *testing.T) {
	c := &viewload.Class{
		Name:       "test.Totals",
		Table:      "totals",
		PrimaryKey: []string{"day", "region", "total"},
		ReadOnly:   true,
	}

	// Every key column unset: the record is empty.
	empty := viewload.NewRecord(c, map[string]any{})
	assert.True(t, empty.IsZero())

	nils := viewload.NewRecord(c, map[string]any{"day": nil, "region": nil})
	assert.True(t, nils.IsZero())

	// Some key columns unset is still a real row: views carry nullable
	// columns that are not identifying.
	partial := viewload.NewRecord(c, map[string]any{"day": "2026-08-30"})
	assert.False(t, partial.IsZero())

	full := viewload.NewRecord(c, map[string]any{"day": "2026-08-30", "region": "emea", "total": 12.5})
	assert.False(t, full.IsZero())
}

func TestRecordReadOnly(t *testing.T) {
	c := &viewload.Class{
		Name:       "test.Totals",
		PrimaryKey: []string{"day"},
		ReadOnly:   true,
	}
	r := viewload.NewRecord(c, map[string]any{"day": "2026-08-30"})
	require.ErrorIs(t, r.Set("day", "2026-08-31"), viewload.ErrReadOnly)

	v, ok := r.Get("day")
	require.True(t, ok)
	assert.Equal(t, "2026-08-30", v)

	_, ok = r.Get("region")
	assert.False(t, ok)
}
