package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionConstructors(t *testing.T) {
	t.Run("scalar operators validate", func(t *testing.T) {
		for _, c := range []Condition{
			Eq("status", "active"),
			Neq("status", "deleted"),
			Gt("price", 100),
			Lt("price", 5000),
			Gte("stock", 1),
			Lte("stock", 10),
			Like("name", "gmt"),
		} {
			assert.NoError(t, c.Validate(), "%s %s", c.Field, c.Op)
		}
	})

	t.Run("in builds a value list", func(t *testing.T) {
		c := In("status", "pending", "paid")
		require.NoError(t, c.Validate())
		assert.Equal(t, []any{"pending", "paid"}, c.Value)
	})

	t.Run("empty in is rejected", func(t *testing.T) {
		assert.ErrorIs(t, In("status").Validate(), ErrInvalidCondition)
		assert.ErrorIs(t, NotIn("status").Validate(), ErrInvalidCondition)
	})

	t.Run("hand-built mismatches are rejected", func(t *testing.T) {
		bad := Condition{Field: "status", Op: OpIn, Value: "pending"}
		assert.ErrorIs(t, bad.Validate(), ErrInvalidCondition)

		unknown := Condition{Field: "status", Op: "~", Value: 1}
		assert.ErrorIs(t, unknown.Validate(), ErrUnknownOperator)

		empty := Condition{Op: OpEq, Value: 1}
		assert.ErrorIs(t, empty.Validate(), ErrInvalidCondition)
	})
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("like")
	require.NoError(t, err)
	assert.Equal(t, OpLike, op)

	_, err = ParseOperator("contains")
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, Query{Where: []Condition{Eq("id", "x")}, Limit: 5}.Validate())
	assert.ErrorIs(t, Query{Limit: -1}.Validate(), ErrInvalidCondition)
	assert.ErrorIs(t, Query{Offset: -1}.Validate(), ErrInvalidCondition)
	assert.ErrorIs(t, Query{Where: []Condition{{Field: "f", Op: "??"}}}.Validate(), ErrUnknownOperator)
}

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	assert.Len(t, s.Tables, 14)
	assert.True(t, s.HasTable(TableUsers))
	assert.False(t, s.HasTable("nope"))

	cart, ok := s.Table(TableCartItems)
	require.True(t, ok)
	assert.Equal(t, TimestampsAddedAt, cart.Timestamps)

	users, ok := s.Table(TableUsers)
	require.True(t, ok)
	assert.Equal(t, TimestampsStandard, users.Timestamps)

	assert.Equal(t, len(s.Tables), len(s.TableNames()))
}
