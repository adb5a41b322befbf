// Package gridfilter parses datagrid filter expressions and translates them
// into SQL WHERE fragments for the sqlite-backed data sources.
package gridfilter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Kind classifies the values a filterable column holds.
type Kind int

const (
	String Kind = iota
	Int
	Bool
	Timestamp
)

// Columns maps filterable column names to their value kinds. Names double as
// the SQL column names.
type Columns map[string]Kind

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	// Clause is the SQL WHERE clause (e.g., "hostname = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any
}

// Translator turns filter expressions into SQL conditions for one column set.
type Translator struct {
	decls   *filtering.Declarations
	columns Columns
}

// NewTranslator builds a translator that accepts filters over the given
// columns and rejects everything else.
func NewTranslator(columns Columns) (*Translator, error) {
	opts := make([]filtering.DeclarationOption, 0, len(columns)+1)
	opts = append(opts, filtering.DeclareStandardFunctions())
	for name, kind := range columns {
		var identType *expr.Type
		switch kind {
		case Int:
			identType = filtering.TypeInt
		case Bool:
			identType = filtering.TypeBool
		case Timestamp:
			identType = filtering.TypeTimestamp
		default:
			identType = filtering.TypeString
		}
		opts = append(opts, filtering.DeclareIdent(name, identType))
	}

	decls, err := filtering.NewDeclarations(opts...)
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	return &Translator{decls: decls, columns: columns}, nil
}

// Translate parses a filter expression and returns a SQL condition.
// Returns an empty condition for an empty filter string.
func (t *Translator) Translate(filterStr string) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}

	filter, err := filtering.ParseFilterString(filterStr, t.decls)
	if err != nil {
		return SQLCondition{}, fmt.Errorf("parse filter: %w", err)
	}

	return t.translateExpr(filter.CheckedExpr.Expr)
}

func (t *Translator) translateExpr(e *expr.Expr) (SQLCondition, error) {
	if e == nil {
		return SQLCondition{}, nil
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return t.translateCall(kind.CallExpr)
	default:
		return SQLCondition{}, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func (t *Translator) translateCall(call *expr.Expr_Call) (SQLCondition, error) {
	switch call.Function {
	case "_&&_", "AND":
		return t.translateLogical(call.Args, "AND")
	case "_||_", "OR":
		return t.translateLogical(call.Args, "OR")
	case "_==_", "=":
		return t.translateComparison(call.Args, "=")
	case "_!=_", "!=":
		return t.translateComparison(call.Args, "!=")
	case "_<_", "<":
		return t.translateComparison(call.Args, "<")
	case "_<=_", "<=":
		return t.translateComparison(call.Args, "<=")
	case "_>_", ">":
		return t.translateComparison(call.Args, ">")
	case "_>=_", ">=":
		return t.translateComparison(call.Args, ">=")
	default:
		return SQLCondition{}, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func (t *Translator) translateLogical(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("%s requires 2 arguments", op)
	}

	left, err := t.translateExpr(args[0])
	if err != nil {
		return SQLCondition{}, err
	}

	right, err := t.translateExpr(args[1])
	if err != nil {
		return SQLCondition{}, err
	}

	return SQLCondition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: append(left.Params, right.Params...),
	}, nil
}

func (t *Translator) translateComparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return SQLCondition{}, err
	}

	if _, ok := t.columns[field]; !ok {
		return SQLCondition{}, fmt.Errorf("unknown field: %s", field)
	}

	value, err := extractValue(args[1])
	if err != nil {
		return SQLCondition{}, err
	}

	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", field, op),
		Params: []any{value},
	}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		// Handle timestamp("...") function calls
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func extractTimestampValue(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil timestamp argument")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		if strVal, ok := kind.ConstExpr.ConstantKind.(*expr.Constant_StringValue); ok {
			t, err := time.Parse(time.RFC3339, strVal.StringValue)
			if err != nil {
				t, err = time.Parse(time.RFC3339Nano, strVal.StringValue)
				if err != nil {
					return "", fmt.Errorf("invalid timestamp format: %s", strVal.StringValue)
				}
			}
			// RFC3339Nano keeps lexical ordering stable in sqlite.
			return t.UTC().Format(time.RFC3339Nano), nil
		}
		return "", fmt.Errorf("timestamp argument must be a string")
	default:
		return "", fmt.Errorf("timestamp argument must be a constant string")
	}
}
