package element

import (
	"fmt"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// filterDeclarations returns the AIP-160 field declarations available to a
// finder filter string. Unlike the storage-facing filters elsewhere in the
// retrieval pack, these identifiers name element attributes, not SQL
// columns: nothing here ever touches a database, since the element tree is
// always in memory (spec §4.1, §9 "the core does not persist state itself").
func filterDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("name", filtering.TypeString),
		filtering.DeclareIdent("className", filtering.TypeString),
		filtering.DeclareIdent("player", filtering.TypeInt),
		filtering.DeclareIdent("id", filtering.TypeInt),
	)
}

// FilterFinder parses an AIP-160 filter string into a Finder evaluated
// against element attributes in memory. An empty filterExpr matches
// everything.
func FilterFinder(filterExpr string) (Finder, error) {
	if filterExpr == "" {
		return func(*GameElement) bool { return true }, nil
	}

	decls, err := filterDeclarations()
	if err != nil {
		return nil, fmt.Errorf("element: build filter declarations: %w", err)
	}

	parsed, err := filtering.ParseFilterString(filterExpr, decls)
	if err != nil {
		return nil, fmt.Errorf("element: parse filter %q: %w", filterExpr, err)
	}

	return translateExpr(parsed.CheckedExpr.Expr)
}

func translateExpr(e *expr.Expr) (Finder, error) {
	if e == nil {
		return func(*GameElement) bool { return true }, nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return nil, fmt.Errorf("element: unsupported expression kind %T", e.ExprKind)
	}
	return translateCall(call.CallExpr)
}

func translateCall(call *expr.Expr_Call) (Finder, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateBinaryBool(call.Args, func(a, b bool) bool { return a && b })
	case "_||_", "OR":
		return translateBinaryBool(call.Args, func(a, b bool) bool { return a || b })
	case "_==_", "=":
		return translateComparison(call.Args, func(cmp int) bool { return cmp == 0 })
	case "_!=_", "!=":
		return translateComparison(call.Args, func(cmp int) bool { return cmp != 0 })
	case "_<_", "<":
		return translateComparison(call.Args, func(cmp int) bool { return cmp < 0 })
	case "_<=_", "<=":
		return translateComparison(call.Args, func(cmp int) bool { return cmp <= 0 })
	case "_>_", ">":
		return translateComparison(call.Args, func(cmp int) bool { return cmp > 0 })
	case "_>=_", ">=":
		return translateComparison(call.Args, func(cmp int) bool { return cmp >= 0 })
	default:
		return nil, fmt.Errorf("element: unsupported filter function %q", call.Function)
	}
}

func translateBinaryBool(args []*expr.Expr, combine func(a, b bool) bool) (Finder, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("element: boolean operator requires 2 arguments")
	}
	left, err := translateExpr(args[0])
	if err != nil {
		return nil, err
	}
	right, err := translateExpr(args[1])
	if err != nil {
		return nil, err
	}
	return func(e *GameElement) bool { return combine(left(e), right(e)) }, nil
}

func translateComparison(args []*expr.Expr, accept func(cmp int) bool) (Finder, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("element: comparison requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}
	return func(e *GameElement) bool {
		return accept(compareField(e, field, value))
	}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	ident, ok := e.ExprKind.(*expr.Expr_IdentExpr)
	if !ok {
		return "", fmt.Errorf("element: expected identifier, got %T", e.ExprKind)
	}
	return ident.IdentExpr.Name, nil
}

func extractValue(e *expr.Expr) (any, error) {
	c, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("element: expected constant, got %T", e.ExprKind)
	}
	switch kind := c.ConstExpr.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	default:
		return nil, fmt.Errorf("element: unsupported constant type %T", kind)
	}
}

// compareField returns -1/0/1 comparing e's field against value, or a
// sentinel outside {-1,0,1} when types are incomparable (so every
// comparator except _!=_ ends up false, which is the conservative result
// for a filter clause that can never match).
func compareField(e *GameElement, field string, value any) int {
	switch field {
	case "name":
		return compareStrings(e.Name, value)
	case "className":
		return compareStrings(e.ClassName, value)
	case "id":
		return compareInts(int64(e.ID), value)
	case "player":
		seat := int64(-1)
		if e.Player != nil {
			seat = int64(e.Player.Seat)
		}
		return compareInts(seat, value)
	default:
		return compareStrings(e.Attr(field).String(), value)
	}
}

func compareStrings(s string, value any) int {
	v, ok := value.(string)
	if !ok {
		return 2
	}
	switch {
	case s == v:
		return 0
	case s < v:
		return -1
	default:
		return 1
	}
}

func compareInts(n int64, value any) int {
	v, ok := value.(int64)
	if !ok {
		return 2
	}
	switch {
	case n == v:
		return 0
	case n < v:
		return -1
	default:
		return 1
	}
}
