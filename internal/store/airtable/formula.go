package airtable

import (
	"fmt"
	"strings"
)

// Expr is a typed filter expression rendered to Airtable's
// boolean-formula syntax at the request boundary. Values are escaped on
// render, so user input never reaches the formula string raw.
type Expr interface {
	render() string
}

type eqExpr struct {
	field string
	value string
}

func (e eqExpr) render() string {
	return fmt.Sprintf("{%s} = '%s'", e.field, escape(e.value))
}

type notExpr struct {
	inner Expr
}

func (e notExpr) render() string {
	return fmt.Sprintf("NOT(%s)", e.inner.render())
}

type andExpr struct {
	exprs []Expr
}

func (e andExpr) render() string {
	parts := make([]string, len(e.exprs))
	for i, x := range e.exprs {
		parts[i] = x.render()
	}
	return fmt.Sprintf("AND(%s)", strings.Join(parts, ", "))
}

type searchExpr struct {
	term  string
	field string
}

func (e searchExpr) render() string {
	return fmt.Sprintf("SEARCH('%s', {%s})", escape(e.term), e.field)
}

type trueExpr struct{}

func (trueExpr) render() string { return "TRUE()" }

// Eq matches records whose field equals value.
func Eq(field, value string) Expr { return eqExpr{field: field, value: value} }

// Not negates an expression.
func Not(inner Expr) Expr { return notExpr{inner: inner} }

// Search matches records whose field contains term.
func Search(term, field string) Expr { return searchExpr{term: term, field: field} }

// True matches every record.
func True() Expr { return trueExpr{} }

// And combines expressions. Zero expressions render as TRUE() and a
// single expression renders bare, matching hand-written formulas.
func And(exprs ...Expr) Expr {
	switch len(exprs) {
	case 0:
		return trueExpr{}
	case 1:
		return exprs[0]
	default:
		return andExpr{exprs: exprs}
	}
}

// Render produces the formula string for an expression.
func Render(e Expr) string {
	return e.render()
}

// escape protects single-quoted formula literals. Backslash first so
// escaped quotes are not double-escaped.
func escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
