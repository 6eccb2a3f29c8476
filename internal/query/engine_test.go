package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/watchstore/internal/model"
)

func testProducts() []model.Record {
	return []model.Record{
		{"id": "p1", "name": "Meridian GMT", "price": 1450.0, "status": "active", "stock": 3.0},
		{"id": "p2", "name": "Atlas Diver", "price": 980.0, "status": "active", "stock": 0.0},
		{"id": "p3", "name": "Meridian Moonphase", "price": 2200.0, "status": "draft", "stock": 5.0},
		{"id": "p4", "name": "Field Standard", "price": 980.0, "status": "active", "stock": 7.0},
		{"id": "p5", "name": "Atlas Chrono", "price": 1750.0, "status": "archived", "stock": 1.0},
	}
}

func ids(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	return out
}

func TestMatch_Operators(t *testing.T) {
	rec := model.Record{"name": "Meridian GMT", "price": 1450.0, "status": "active", "tags": []any{"gmt", "steel"}}

	tests := []struct {
		name string
		cond model.Condition
		want bool
	}{
		{"eq string", model.Eq("status", "active"), true},
		{"eq miss", model.Eq("status", "draft"), false},
		{"eq numeric cross-type", model.Eq("price", 1450), true},
		{"neq", model.Neq("status", "draft"), true},
		{"gt", model.Gt("price", 1000), true},
		{"gt equal is false", model.Gt("price", 1450), false},
		{"lt", model.Lt("price", 2000), true},
		{"gte equal", model.Gte("price", 1450.0), true},
		{"lte equal", model.Lte("price", 1450), true},
		{"gt lexicographic", model.Gt("status", "abc"), true},
		{"gt mixed types never matches", model.Gt("status", 5), false},
		{"like substring", model.Like("name", "gmt"), true},
		{"like case-insensitive", model.Like("name", "MERIDIAN"), true},
		{"like on number string form", model.Like("price", "1450"), true},
		{"like miss", model.Like("name", "diver"), false},
		{"in", model.In("status", "active", "draft"), true},
		{"in miss", model.In("status", "archived"), false},
		{"in numeric", model.In("price", 980, 1450), true},
		{"not_in", model.NotIn("status", "archived", "draft"), true},
		{"not_in hit", model.NotIn("status", "active"), false},
		{"eq on absent field", model.Eq("missing", "x"), false},
		{"neq on absent field matches", model.Neq("missing", "x"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(rec, tt.cond))
		})
	}
}

func TestApply_Filter(t *testing.T) {
	out, err := Apply(testProducts(), model.Query{
		Where: []model.Condition{
			model.Eq("status", "active"),
			model.Gt("stock", 0),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p4"}, ids(out))
}

func TestApply_RejectsInvalidQuery(t *testing.T) {
	_, err := Apply(testProducts(), model.Query{
		Where: []model.Condition{{Field: "status", Op: "~", Value: 1}},
	})
	assert.ErrorIs(t, err, model.ErrUnknownOperator)
}

func TestSort_StableMultiKey(t *testing.T) {
	out, err := Apply(testProducts(), model.Query{
		Order: []model.Order{model.Asc("price"), model.Asc("id")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p4", "p1", "p5", "p3"}, ids(out))

	t.Run("ties keep original order", func(t *testing.T) {
		out, err := Apply(testProducts(), model.Query{
			Order: []model.Order{model.Asc("price")},
		})
		require.NoError(t, err)
		// p2 and p4 share price 980; p2 precedes p4 in the input.
		assert.Equal(t, []string{"p2", "p4", "p1", "p5", "p3"}, ids(out))
	})

	t.Run("descending", func(t *testing.T) {
		out, err := Apply(testProducts(), model.Query{
			Order: []model.Order{model.Desc("price")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p3", "p5", "p1", "p2", "p4"}, ids(out))
	})

	t.Run("second key breaks ties with own direction", func(t *testing.T) {
		out, err := Apply(testProducts(), model.Query{
			Order: []model.Order{model.Asc("price"), model.Desc("id")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p4", "p2", "p1", "p5", "p3"}, ids(out))
	})
}

func TestPaginate_Formula(t *testing.T) {
	records := testProducts()
	n := len(records)

	for _, tt := range []struct{ limit, offset int }{
		{0, 0}, {2, 0}, {2, 2}, {2, 4}, {2, 5}, {2, 9}, {10, 0}, {10, 3},
	} {
		t.Run(fmt.Sprintf("limit=%d offset=%d", tt.limit, tt.offset), func(t *testing.T) {
			out, err := Apply(records, model.Query{Limit: tt.limit, Offset: tt.offset})
			require.NoError(t, err)

			want := n - tt.offset
			if want < 0 {
				want = 0
			}
			if tt.limit > 0 && tt.limit < want {
				want = tt.limit
			}
			assert.Len(t, out, want)

			// Same order as the unpaginated query's slice [offset:offset+limit].
			full, err := Apply(records, model.Query{})
			require.NoError(t, err)
			start := tt.offset
			if start > n {
				start = n
			}
			assert.Equal(t, ids(full[start:start+len(out)]), ids(out))
		})
	}
}

func TestApply_Projection(t *testing.T) {
	out, err := Apply(testProducts(), model.Query{
		Where:  []model.Condition{model.Eq("id", "p1")},
		Fields: []string{"id", "name"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.Record{"id": "p1", "name": "Meridian GMT"}, out[0])
}

func TestApply_NeverMutatesInput(t *testing.T) {
	records := testProducts()
	out, err := Apply(records, model.Query{
		Order:  []model.Order{model.Desc("price")},
		Fields: []string{"id"},
	})
	require.NoError(t, err)

	out[0]["id"] = "tampered"
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(records),
		"input snapshot must be untouched")
}

func TestApply_SortDoesNotReorderCallerSlice(t *testing.T) {
	records := testProducts()
	_, err := Apply(records, model.Query{Order: []model.Order{model.Desc("price")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(records))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "1450", Stringify(1450.0))
	assert.Equal(t, "1450.5", Stringify(1450.5))
	assert.Equal(t, "abc", Stringify("abc"))
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "true", Stringify(true))
}
