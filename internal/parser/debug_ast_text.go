package parser

import (
	"fmt"
	"github.com/bsparks/simple-script/internal/ast"
	"reflect"
	"strings"
)

// RenderASTAsText produces an indented view of the tree with one statement per
// line. Nested blocks open on the owning line and close at its indent.
func RenderASTAsText(node ast.Node, indent int) string {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return "nil"
	}

	sp := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Program:
		var sb strings.Builder
		for i, s := range n.Statements {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(RenderASTAsText(s, 0))
		}
		return sb.String()

	case *ast.LetStatement:
		return fmt.Sprintf("%slet %s = %s", sp, RenderASTAsText(n.Name, 0), RenderASTAsText(n.Value, indent))

	case *ast.ReturnStatement:
		return fmt.Sprintf("%sreturn %s", sp, RenderASTAsText(n.ReturnValue, indent))

	case *ast.ExpressionStatement:
		return sp + RenderASTAsText(n.Expression, indent)

	case *ast.BlockStatement:
		if len(n.Statements) == 0 {
			return "<< >>"
		}
		var sb strings.Builder
		sb.WriteString("<<\n")
		for _, s := range n.Statements {
			sb.WriteString(RenderASTAsText(s, indent+1))
			sb.WriteString("\n")
		}
		sb.WriteString(sp + ">>")
		return sb.String()

	case *ast.FunctionLiteral:
		params := []string{}
		for _, p := range n.Parameters {
			params = append(params, RenderASTAsText(p, 0))
		}
		return fmt.Sprintf("fn(%s) %s", strings.Join(params, ", "), RenderASTAsText(n.Body, indent))

	case *ast.IfExpression:
		res := fmt.Sprintf("if %s %s", RenderASTAsText(n.Condition, 0), RenderASTAsText(n.Consequence, indent))
		if n.Alternative != nil {
			res += " else " + RenderASTAsText(n.Alternative, indent)
		}
		return res

	case *ast.CallExpression:
		return fmt.Sprintf("%s(%s)", RenderASTAsText(n.Function, indent), renderList(n.Arguments, indent))

	case *ast.InfixExpression:
		return fmt.Sprintf("(%s %s %s)", RenderASTAsText(n.Left, indent), n.Operator, RenderASTAsText(n.Right, indent))

	case *ast.PrefixExpression:
		return fmt.Sprintf("(%s%s)", n.Operator, RenderASTAsText(n.Right, indent))

	case *ast.IndexExpression:
		return fmt.Sprintf("%s[%s]", RenderASTAsText(n.Left, indent), RenderASTAsText(n.Index, indent))

	case *ast.ArrayLiteral:
		return "[" + renderList(n.Elements, indent) + "]"

	case *ast.HashLiteral:
		pairs := []string{}
		for _, pair := range n.Pairs {
			pairs = append(pairs, RenderASTAsText(pair.Key, indent)+": "+RenderASTAsText(pair.Value, indent))
		}
		return "<<" + strings.Join(pairs, ", ") + ">>"

	case *ast.Identifier, *ast.Boolean, *ast.NumberLiteral, *ast.StringLiteral:
		return n.String()

	default:
		return fmt.Sprintf("<%T>", n)
	}
}

func renderList(exps []ast.Expression, indent int) string {
	parts := make([]string, len(exps))
	for i, e := range exps {
		parts[i] = RenderASTAsText(e, indent)
	}
	return strings.Join(parts, ", ")
}
