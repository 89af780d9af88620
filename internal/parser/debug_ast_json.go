package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/bsparks/simple-script/internal/ast"
	"reflect"
)

// WalkAST recursively traverses an AST and serializes it into a map structure
// suitable for JSON output. Every node carries its type and source offset.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		return map[string]interface{}{
			"type":       "Program",
			"statements": walkStatements(n.Statements),
		}

	case *ast.LetStatement:
		return map[string]interface{}{
			"type":     "LetStatement",
			"position": n.Token.Position,
			"token":    n.TokenLiteral(),
			"name":     WalkAST(n.Name),
			"value":    WalkAST(n.Value),
		}

	case *ast.ReturnStatement:
		return map[string]interface{}{
			"type":        "ReturnStatement",
			"position":    n.Token.Position,
			"token":       n.TokenLiteral(),
			"returnValue": WalkAST(n.ReturnValue),
		}

	case *ast.ExpressionStatement:
		return map[string]interface{}{
			"type":       "ExpressionStatement",
			"position":   n.Token.Position,
			"token":      n.TokenLiteral(),
			"expression": WalkAST(n.Expression),
		}

	case *ast.BlockStatement:
		return map[string]interface{}{
			"type":       "BlockStatement",
			"position":   n.Token.Position,
			"token":      n.TokenLiteral(),
			"statements": walkStatements(n.Statements),
		}

	case *ast.Identifier:
		return map[string]interface{}{
			"type":     "Identifier",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.Boolean:
		return map[string]interface{}{
			"type":     "Boolean",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.NumberLiteral:
		return map[string]interface{}{
			"type":     "NumberLiteral",
			"position": n.Token.Position,
			"token":    n.TokenLiteral(),
			"value":    n.Value,
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":     "StringLiteral",
			"position": n.Token.Position,
			"value":    n.Value,
		}

	case *ast.PrefixExpression:
		return map[string]interface{}{
			"type":     "PrefixExpression",
			"position": n.Token.Position,
			"operator": n.Operator,
			"right":    WalkAST(n.Right),
		}

	case *ast.InfixExpression:
		return map[string]interface{}{
			"type":     "InfixExpression",
			"position": n.Token.Position,
			"operator": n.Operator,
			"left":     WalkAST(n.Left),
			"right":    WalkAST(n.Right),
		}

	case *ast.IfExpression:
		return map[string]interface{}{
			"type":        "IfExpression",
			"position":    n.Token.Position,
			"condition":   WalkAST(n.Condition),
			"consequence": WalkAST(n.Consequence),
			"alternative": WalkAST(n.Alternative),
		}

	case *ast.FunctionLiteral:
		params := make([]interface{}, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = WalkAST(p)
		}
		return map[string]interface{}{
			"type":       "FunctionLiteral",
			"position":   n.Token.Position,
			"parameters": params,
			"body":       WalkAST(n.Body),
		}

	case *ast.CallExpression:
		return map[string]interface{}{
			"type":      "CallExpression",
			"position":  n.Token.Position,
			"function":  WalkAST(n.Function),
			"arguments": walkExpressions(n.Arguments),
		}

	case *ast.ArrayLiteral:
		return map[string]interface{}{
			"type":     "ArrayLiteral",
			"position": n.Token.Position,
			"elements": walkExpressions(n.Elements),
		}

	case *ast.IndexExpression:
		return map[string]interface{}{
			"type":     "IndexExpression",
			"position": n.Token.Position,
			"left":     WalkAST(n.Left),
			"index":    WalkAST(n.Index),
		}

	case *ast.HashLiteral:
		pairs := make([]interface{}, len(n.Pairs))
		for i, pair := range n.Pairs {
			pairs[i] = map[string]interface{}{
				"key":   WalkAST(pair.Key),
				"value": WalkAST(pair.Value),
			}
		}
		return map[string]interface{}{
			"type":     "HashLiteral",
			"position": n.Token.Position,
			"pairs":    pairs,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

func walkStatements(stmts []ast.Statement) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = WalkAST(s)
	}
	return result
}

func walkExpressions(exps []ast.Expression) []interface{} {
	result := make([]interface{}, len(exps))
	for i, e := range exps {
		result[i] = WalkAST(e)
	}
	return result
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %v", err)
	}
	return buf.String(), nil
}
