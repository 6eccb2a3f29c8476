package model

import (
	"fmt"
)

// Operator identifies a condition's comparison.
type Operator string

// Supported condition operators.
const (
	OpEq    Operator = "="
	OpNeq   Operator = "!="
	OpGt    Operator = ">"
	OpLt    Operator = "<"
	OpGte   Operator = ">="
	OpLte   Operator = "<="
	OpLike  Operator = "like"
	OpIn    Operator = "in"
	OpNotIn Operator = "not_in"
)

// ParseOperator converts an operator string to an Operator.
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case OpEq, OpNeq, OpGt, OpLt, OpGte, OpLte, OpLike, OpIn, OpNotIn:
		return Operator(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Condition is a single filter clause: field, operator, value.
// Conditions are built through the constructor functions below so that
// invalid operator/value combinations are rejected before they reach the
// filter stage. For in/not_in the value is always a []any.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Eq matches records whose field equals value.
func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// Neq matches records whose field does not equal value.
func Neq(field string, value any) Condition {
	return Condition{Field: field, Op: OpNeq, Value: value}
}

// Gt matches records whose field is greater than value.
func Gt(field string, value any) Condition {
	return Condition{Field: field, Op: OpGt, Value: value}
}

// Lt matches records whose field is less than value.
func Lt(field string, value any) Condition {
	return Condition{Field: field, Op: OpLt, Value: value}
}

// Gte matches records whose field is greater than or equal to value.
func Gte(field string, value any) Condition {
	return Condition{Field: field, Op: OpGte, Value: value}
}

// Lte matches records whose field is less than or equal to value.
func Lte(field string, value any) Condition {
	return Condition{Field: field, Op: OpLte, Value: value}
}

// Like matches records whose field contains value as a case-insensitive
// substring, comparing the string forms of both sides.
func Like(field string, value any) Condition {
	return Condition{Field: field, Op: OpLike, Value: value}
}

// In matches records whose field equals one of the given values.
func In(field string, values ...any) Condition {
	return Condition{Field: field, Op: OpIn, Value: values}
}

// NotIn matches records whose field equals none of the given values.
func NotIn(field string, values ...any) Condition {
	return Condition{Field: field, Op: OpNotIn, Value: values}
}

// ByID is the canonical single-record condition.
func ByID(id string) Condition {
	return Eq(FieldID, id)
}

// Validate checks the condition for operator/value mismatches.
func (c Condition) Validate() error {
	if c.Field == "" {
		return fmt.Errorf("%w: empty field", ErrInvalidCondition)
	}
	switch c.Op {
	case OpEq, OpNeq, OpGt, OpLt, OpGte, OpLte, OpLike:
		return nil
	case OpIn, OpNotIn:
		vs, ok := c.Value.([]any)
		if !ok {
			return fmt.Errorf("%w: %s requires a value list", ErrInvalidCondition, c.Op)
		}
		if len(vs) == 0 {
			return fmt.Errorf("%w: %s requires at least one value", ErrInvalidCondition, c.Op)
		}
		return nil
	case "":
		return fmt.Errorf("%w: missing operator", ErrInvalidCondition)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOperator, c.Op)
}

// Order is a single sort key.
type Order struct {
	Field string
	Desc  bool
}

// Asc sorts ascending by field.
func Asc(field string) Order {
	return Order{Field: field}
}

// Desc sorts descending by field.
func Desc(field string) Order {
	return Order{Field: field, Desc: true}
}

// Query describes a read over one table: filter conditions (ANDed
// together), sort keys, pagination, and optional field projection.
type Query struct {
	// Where specifies filter conditions (ANDed together).
	Where []Condition
	// Order specifies the sort keys, applied in order.
	Order []Order
	// Limit restricts the number of results (0 = no limit).
	Limit int
	// Offset skips the first N results.
	Offset int
	// Fields specifies which fields to return (empty = all).
	Fields []string
}

// Validate checks every condition in the query.
func (q Query) Validate() error {
	for _, c := range q.Where {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidCondition)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: negative offset", ErrInvalidCondition)
	}
	return nil
}
