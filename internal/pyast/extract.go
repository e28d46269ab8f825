package pyast

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func extractModule(root *sitter.Node, source []byte, path string) *Module {
	mod := &Module{Path: path}

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)

		node := child
		var decorators []string
		if child.Kind() == "decorated_definition" {
			decorators = extractDecorators(child, source)
			node = child.ChildByFieldName("definition")
			if node == nil {
				continue
			}
		}

		switch node.Kind() {
		case "class_definition":
			mod.Classes = append(mod.Classes, extractClass(node, source))
		case "function_definition":
			name := fieldText(node, "name", source)
			if name == "" {
				continue
			}
			mod.Functions = append(mod.Functions, Function{
				Name:       name,
				Line:       int(node.StartPosition().Row) + 1,
				Decorators: decorators,
			})
		case "expression_statement":
			if assign, ok := extractAssign(node, source); ok {
				mod.Assigns = append(mod.Assigns, assign)
			}
		}
	}

	return mod
}

func extractDecorators(node *sitter.Node, source []byte) []string {
	var names []string

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "decorator" {
			continue
		}

		expr := firstNamedChild(child)
		if expr == nil {
			continue
		}
		switch expr.Kind() {
		case "identifier":
			names = append(names, nodeText(expr, source))
		case "call":
			fn := expr.ChildByFieldName("function")
			if fn != nil && fn.Kind() == "identifier" {
				names = append(names, nodeText(fn, source))
			}
		}
	}

	return names
}

func extractClass(node *sitter.Node, source []byte) Class {
	cls := Class{
		Name: fieldText(node, "name", source),
		Line: int(node.StartPosition().Row) + 1,
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.NamedChildCount(); i++ {
			base := supers.NamedChild(i)
			switch base.Kind() {
			case "identifier":
				cls.Bases = append(cls.Bases, nodeText(base, source))
			case "attribute":
				cls.Bases = append(cls.Bases, fieldText(base, "attribute", source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		stmt := body.Child(i)
		if stmt.Kind() == "decorated_definition" {
			if def := stmt.ChildByFieldName("definition"); def != nil {
				stmt = def
			}
		}

		switch stmt.Kind() {
		case "function_definition":
			if name := fieldText(stmt, "name", source); name != "" {
				cls.Methods = append(cls.Methods, name)
			}
		case "expression_statement":
			if assign, ok := extractAssign(stmt, source); ok {
				cls.Assigns = append(cls.Assigns, assign)
			}
		}
	}

	return cls
}

func extractAssign(stmt *sitter.Node, source []byte) (Assign, bool) {
	inner := firstNamedChild(stmt)
	if inner == nil || inner.Kind() != "assignment" {
		return Assign{}, false
	}
	// Annotated assignments ("x: T = v") are a different statement kind in
	// Python's grammar and the pipeline never inspects them.
	if inner.ChildByFieldName("type") != nil {
		return Assign{}, false
	}

	left := inner.ChildByFieldName("left")
	right := inner.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != "identifier" {
		return Assign{}, false
	}

	return Assign{
		Target: nodeText(left, source),
		Value:  extractExpr(right, source),
	}, true
}

func extractExpr(node *sitter.Node, source []byte) *Expr {
	switch node.Kind() {
	case "identifier":
		return &Expr{Kind: KindName, Name: nodeText(node, source)}

	case "attribute":
		expr := &Expr{Kind: KindAttribute, Name: fieldText(node, "attribute", source)}
		if obj := node.ChildByFieldName("object"); obj != nil {
			expr.Recv = extractExpr(obj, source)
		}
		return expr

	case "call":
		expr := &Expr{Kind: KindCall}
		if fn := node.ChildByFieldName("function"); fn != nil {
			expr.Fn = extractExpr(fn, source)
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				arg := args.NamedChild(i)
				switch arg.Kind() {
				case "keyword_argument", "comment":
					continue
				}
				expr.Args = append(expr.Args, extractExpr(arg, source))
			}
		}
		return expr

	case "string":
		return extractString(node, source)

	case "list":
		expr := &Expr{Kind: KindList}
		for i := uint(0); i < node.NamedChildCount(); i++ {
			elem := node.NamedChild(i)
			if elem.Kind() == "comment" {
				continue
			}
			expr.Elems = append(expr.Elems, extractExpr(elem, source))
		}
		return expr

	case "parenthesized_expression":
		if inner := firstNamedChild(node); inner != nil {
			return extractExpr(inner, source)
		}
		return &Expr{Kind: KindOther}

	default:
		return &Expr{Kind: KindOther}
	}
}

// extractString returns a KindString expression for plain string literals.
// F-strings carry interpolation nodes and are not constants, so they
// collapse to KindOther like any other non-literal expression.
func extractString(node *sitter.Node, source []byte) *Expr {
	var content string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "interpolation":
			return &Expr{Kind: KindOther}
		case "string_content", "escape_sequence":
			content += nodeText(child, source)
		}
	}
	return &Expr{Kind: KindString, Name: content}
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node.NamedChildCount() == 0 {
		return nil
	}
	return node.NamedChild(0)
}

func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, source)
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
