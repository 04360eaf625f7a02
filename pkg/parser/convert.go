package parser

import (
	"log/slog"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/xinminlabs/parser-node-ext/pkg/node"
)

// converter walks a tree-sitter CST and produces tagged nodes. One
// converter per parse; it carries the source bytes for span extraction.
type converter struct {
	source []byte
	logger *slog.Logger
}

// program converts the root program node. A single statement comes back
// bare; multiple statements are wrapped in a begin grouping node (the
// grammar's convention); an empty program is nil.
func (c *converter) program(ts sitter.Node) *node.Node {
	stmts := c.convertChildren(ts)

	switch len(stmts) {
	case 0:
		return nil
	case 1:
		if single, ok := stmts[0].(*node.Node); ok {
			return single
		}

		return c.newNode(node.TypeBegin, ts, stmts...)
	default:
		return c.newNode(node.TypeBegin, ts, stmts...)
	}
}

// newNode builds a tagged node carrying the tree-sitter node's span and the
// original source.
func (c *converter) newNode(t node.Type, ts sitter.Node, children ...any) *node.Node {
	return node.New(t, children...).WithPos(c.positions(ts)).WithSource(c.source)
}

func (c *converter) positions(ts sitter.Node) *node.Positions {
	start, end := ts.StartPoint(), ts.EndPoint()

	return &node.Positions{
		StartLine:   uint(start.Row) + 1,
		StartCol:    uint(start.Column) + 1,
		StartOffset: ts.StartByte(),
		EndLine:     uint(end.Row) + 1,
		EndCol:      uint(end.Column) + 1,
		EndOffset:   ts.EndByte(),
	}
}

func (c *converter) text(ts sitter.Node) string {
	start, end := ts.StartByte(), ts.EndByte()
	if end > uint(len(c.source)) || start > end {
		return ""
	}

	return string(c.source[start:end])
}

// convertChildren converts every named child, skipping comments and
// constructs that convert to nothing.
func (c *converter) convertChildren(ts sitter.Node) []any {
	var children []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "comment" {
			continue
		}

		converted := c.convert(child)
		if converted != nil {
			children = append(children, converted)
		}
	}

	return children
}

// field converts the named field child, or returns nil when absent.
func (c *converter) field(ts sitter.Node, name string) any {
	child := ts.ChildByFieldName(name)
	if child.IsNull() {
		return nil
	}

	return c.convert(child)
}

// wrap turns a statement list into a single child: nil for none, the
// statement itself for one, a begin grouping node for many.
func (c *converter) wrap(ts sitter.Node, stmts []any) any {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts[0]
	default:
		return c.newNode(node.TypeBegin, ts, stmts...)
	}
}

// convert dispatches one CST node to its tagged-node form. Unknown
// constructs degrade to a generic tag named after the CST node type, with
// converted named children, so unanticipated grammar output stays
// navigable.
//
//nolint:gocyclo,cyclop,funlen,maintidx // Grammar dispatch is inherently a wide switch.
func (c *converter) convert(ts sitter.Node) any {
	switch ts.Type() {
	case "comment", "empty_statement":
		return nil
	case "program", "parenthesized_statements":
		stmts := c.convertChildren(ts)
		if len(stmts) == 0 {
			return nil
		}

		return c.newNode(node.TypeBegin, ts, stmts...)
	case "identifier":
		return c.newNode(node.TypeLvar, ts, node.Symbol(c.text(ts)))
	case "instance_variable":
		return c.newNode(node.TypeIvar, ts, node.Symbol(c.text(ts)))
	case "class_variable":
		return c.newNode(node.TypeCvar, ts, node.Symbol(c.text(ts)))
	case "global_variable":
		return c.newNode(node.TypeGvar, ts, node.Symbol(c.text(ts)))
	case "constant":
		return c.newNode(node.TypeConst, ts, nil, node.Symbol(c.text(ts)))
	case "scope_resolution":
		return c.convertScopeResolution(ts)
	case "self":
		return c.newNode(node.TypeSelf, ts)
	case "true":
		return c.newNode(node.TypeTrue, ts)
	case "false":
		return c.newNode(node.TypeFalse, ts)
	case "nil":
		return c.newNode(node.TypeNil, ts)
	case "integer":
		return c.convertInteger(ts)
	case "float":
		return c.convertFloat(ts)
	case "string":
		return c.convertString(ts)
	case "simple_symbol":
		return c.newNode(node.TypeSym, ts, node.Symbol(strings.TrimPrefix(c.text(ts), ":")))
	case "hash_key_symbol":
		return c.newNode(node.TypeSym, ts, node.Symbol(c.text(ts)))
	case "delimited_symbol":
		return c.convertDelimitedSymbol(ts)
	case "string_content":
		return c.newNode(node.TypeStr, ts, c.text(ts))
	case "interpolation":
		return c.convertInterpolation(ts)
	case "regex":
		return c.convertRegex(ts)
	case "array":
		return c.newNode(node.TypeArray, ts, c.convertChildren(ts)...)
	case "hash":
		return c.newNode(node.TypeHash, ts, c.convertChildren(ts)...)
	case "pair":
		return c.newNode(node.TypePair, ts, c.field(ts, "key"), c.field(ts, "value"))
	case "hash_splat_argument":
		return c.newNode(node.TypeKwsplat, ts, c.firstNamedChild(ts))
	case "splat_argument":
		return c.newNode(node.TypeSplat, ts, c.firstNamedChild(ts))
	case "block_argument":
		return c.newNode(node.TypeBlockPass, ts, c.firstNamedChild(ts))
	case "range":
		return c.convertRange(ts)
	case "binary":
		return c.convertBinary(ts)
	case "unary":
		return c.convertUnary(ts)
	case "call":
		return c.convertCall(ts)
	case "element_reference":
		return c.convertElementReference(ts)
	case "assignment":
		return c.convertAssignment(ts)
	case "operator_assignment":
		return c.convertOperatorAssignment(ts)
	case "left_assignment_list", "destructured_parameter":
		return c.newNode(node.TypeMlhs, ts, c.convertTargets(ts)...)
	case "if", "unless", "elsif":
		return c.convertConditional(ts)
	case "conditional":
		return c.newNode(node.TypeIf, ts,
			c.field(ts, "condition"), c.field(ts, "consequence"), c.field(ts, "alternative"))
	case "if_modifier":
		return c.newNode(node.TypeIf, ts, c.field(ts, "condition"), c.field(ts, "body"), nil)
	case "unless_modifier":
		return c.newNode(node.TypeIf, ts, c.field(ts, "condition"), nil, c.field(ts, "body"))
	case "while", "until":
		return c.convertLoop(ts)
	case "while_modifier", "until_modifier":
		return c.convertLoopModifier(ts)
	case "for":
		return c.convertFor(ts)
	case "case":
		return c.convertCase(ts, node.TypeCase, "when")
	case "case_match":
		return c.convertCase(ts, node.TypeCaseMatch, "in_clause")
	case "when":
		return c.convertWhen(ts)
	case "in_clause":
		return c.convertInClause(ts)
	case "then", "else", "do", "block_body", "body_statement":
		return c.wrap(ts, c.convertChildren(ts))
	case "begin":
		return c.convertBegin(ts)
	case "rescue_modifier":
		return c.convertRescueModifier(ts)
	case "method":
		return c.convertMethod(ts)
	case "singleton_method":
		return c.convertSingletonMethod(ts)
	case "method_parameters", "block_parameters", "lambda_parameters", "bare_parameters":
		return c.convertParameters(ts)
	case "class":
		return c.convertClass(ts)
	case "singleton_class":
		return c.newNode(node.TypeSclass, ts, c.field(ts, "value"), c.bodyField(ts))
	case "module":
		return c.newNode(node.TypeModule, ts, c.field(ts, "name"), c.bodyField(ts))
	case "lambda":
		return c.convertLambda(ts)
	case "return":
		return c.newNode(node.TypeReturn, ts, c.callArguments(ts)...)
	case "yield":
		return c.newNode(node.TypeYield, ts, c.callArguments(ts)...)
	case "super":
		return c.convertSuper(ts)
	case "break":
		return c.newNode(node.TypeBreak, ts, c.callArguments(ts)...)
	case "next":
		return c.newNode(node.TypeNext, ts, c.callArguments(ts)...)
	case "redo":
		return c.newNode(node.TypeRedo, ts)
	case "retry":
		return c.newNode(node.TypeRetry, ts)
	case "alias":
		return c.convertAlias(ts)
	case "undef":
		return c.newNode(node.TypeUndef, ts, c.convertMethodNames(ts)...)
	default:
		return c.convertFallback(ts)
	}
}

// convertFallback keeps unanticipated constructs navigable under a generic
// tag named after the CST node type.
func (c *converter) convertFallback(ts sitter.Node) any {
	c.logger.Debug("unmapped construct", "cst_type", ts.Type())

	return c.newNode(node.Type(ts.Type()), ts, c.convertChildren(ts)...)
}

func (c *converter) firstNamedChild(ts sitter.Node) any {
	children := c.convertChildren(ts)
	if len(children) == 0 {
		return nil
	}

	return children[0]
}

func (c *converter) convertScopeResolution(ts sitter.Node) *node.Node {
	scope := c.field(ts, "scope")
	if scope == nil {
		// Leading :: pins the lookup to the root scope.
		scope = c.newNode(node.TypeCbase, ts)
	}

	name := ts.ChildByFieldName("name")

	return c.newNode(node.TypeConst, ts, scope, node.Symbol(c.text(name)))
}

func (c *converter) convertInterpolation(ts sitter.Node) *node.Node {
	stmts := c.convertChildren(ts)

	return c.newNode(node.TypeBegin, ts, stmts...)
}

func (c *converter) convertString(ts sitter.Node) *node.Node {
	parts := c.convertChildren(ts)

	if len(parts) == 0 {
		return c.newNode(node.TypeStr, ts, "")
	}

	if len(parts) == 1 {
		if str, ok := parts[0].(*node.Node); ok && str.Type == node.TypeStr {
			return c.newNode(node.TypeStr, ts, str.Children...)
		}
	}

	return c.newNode(node.TypeDstr, ts, parts...)
}

func (c *converter) convertDelimitedSymbol(ts sitter.Node) *node.Node {
	parts := c.convertChildren(ts)

	if len(parts) == 1 {
		if str, ok := parts[0].(*node.Node); ok && str.Type == node.TypeStr {
			if content, ok := str.Children[0].(string); ok {
				return c.newNode(node.TypeSym, ts, node.Symbol(content))
			}
		}
	}

	return c.newNode(node.TypeDsym, ts, parts...)
}

func (c *converter) convertRegex(ts sitter.Node) *node.Node {
	children := c.convertChildren(ts)

	text := c.text(ts)

	var flags []any

	if idx := strings.LastIndex(text, "/"); idx >= 0 {
		for _, flag := range text[idx+1:] {
			flags = append(flags, node.Symbol(string(flag)))
		}
	}

	children = append(children, c.newNode(node.TypeRegopt, ts, flags...))

	return c.newNode(node.TypeRegexp, ts, children...)
}

func (c *converter) convertRange(ts sitter.Node) *node.Node {
	rangeType := node.TypeIrange

	operator := ts.ChildByFieldName("operator")
	if !operator.IsNull() && c.text(operator) == "..." {
		rangeType = node.TypeErange
	}

	return c.newNode(rangeType, ts, c.field(ts, "begin"), c.field(ts, "end"))
}

func (c *converter) convertBinary(ts sitter.Node) *node.Node {
	left := c.field(ts, "left")
	right := c.field(ts, "right")
	operator := c.text(ts.ChildByFieldName("operator"))

	switch operator {
	case "&&", "and":
		return c.newNode(node.TypeAnd, ts, left, right)
	case "||", "or":
		return c.newNode(node.TypeOr, ts, left, right)
	default:
		return c.newNode(node.TypeSend, ts, left, node.Symbol(operator), right)
	}
}

func (c *converter) convertUnary(ts sitter.Node) *node.Node {
	operand := c.field(ts, "operand")
	operator := c.text(ts.ChildByFieldName("operator"))

	switch operator {
	case "-":
		return c.newNode(node.TypeSend, ts, operand, node.Symbol("-@"))
	case "+":
		return c.newNode(node.TypeSend, ts, operand, node.Symbol("+@"))
	case "not":
		return c.newNode(node.TypeSend, ts, operand, node.Symbol("!"))
	case "defined?":
		return c.newNode(node.TypeDefined, ts, operand)
	default:
		return c.newNode(node.TypeSend, ts, operand, node.Symbol(operator))
	}
}

// callArguments collects converted arguments from a node's argument_list
// child (or the node's own named children for keyword constructs like
// yield and return).
func (c *converter) callArguments(ts sitter.Node) []any {
	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "argument_list" {
			return c.argumentList(child)
		}
	}

	return nil
}

// argumentList converts an argument_list, folding a trailing run of bare
// pairs and keyword splats into a synthetic hash node, matching how the
// grammar represents trailing keyword arguments.
func (c *converter) argumentList(ts sitter.Node) []any {
	converted := c.convertChildren(ts)

	firstPair := len(converted)

	for idx := len(converted) - 1; idx >= 0; idx-- {
		child, ok := converted[idx].(*node.Node)
		if !ok || (child.Type != node.TypePair && child.Type != node.TypeKwsplat) {
			break
		}

		firstPair = idx
	}

	if firstPair == len(converted) {
		return converted
	}

	// The hash must own its children: appending to the truncated prefix
	// below would otherwise overwrite the shared backing array.
	pairs := append([]any(nil), converted[firstPair:]...)
	kwargs := node.New(node.TypeHash, pairs...).WithSource(c.source)

	return append(converted[:firstPair:firstPair], kwargs)
}

func (c *converter) convertCall(ts sitter.Node) *node.Node {
	receiver := c.field(ts, "receiver")

	callType := node.TypeSend

	operator := ts.ChildByFieldName("operator")
	if !operator.IsNull() && c.text(operator) == "&." {
		callType = node.TypeCsend
	}

	method := ts.ChildByFieldName("method")

	// super with an argument list parses as a call whose method is the
	// super keyword.
	if !method.IsNull() && method.Type() == "super" {
		return c.newNode(node.TypeSuper, ts, c.callArguments(ts)...)
	}

	message := node.Symbol("call")
	if !method.IsNull() {
		message = node.Symbol(c.text(method))
	}

	children := append([]any{receiver, message}, c.callArguments(ts)...)
	call := c.newNode(callType, ts, children...)

	blockChild := ts.ChildByFieldName("block")
	if blockChild.IsNull() {
		return call
	}

	return c.convertBlock(blockChild, call)
}

// convertBlock wraps a call node with its attached brace or do block.
func (c *converter) convertBlock(ts sitter.Node, call *node.Node) *node.Node {
	params := c.field(ts, "parameters")
	if params == nil {
		params = node.New(node.TypeArgs).WithSource(c.source)
	}

	body := c.field(ts, "body")
	if body == nil {
		body = c.wrap(ts, c.blockStatements(ts))
	}

	return c.newNode(node.TypeBlock, ts, call, params, body)
}

// blockStatements collects a block's statement children for grammars where
// the block body is not a dedicated field.
func (c *converter) blockStatements(ts sitter.Node) []any {
	var stmts []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)

		switch child.Type() {
		case "block_parameters", "comment":
			continue
		default:
			converted := c.convert(child)
			if converted != nil {
				stmts = append(stmts, converted)
			}
		}
	}

	return stmts
}

func (c *converter) convertElementReference(ts sitter.Node) *node.Node {
	object := c.field(ts, "object")

	children := append([]any{object}, c.convertIndexArguments(ts)...)

	return c.newNode(node.TypeIndex, ts, children...)
}

func (c *converter) convertIndexArguments(ts sitter.Node) []any {
	var args []any

	object := ts.ChildByFieldName("object")

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "comment" {
			continue
		}

		if !object.IsNull() && child.StartByte() == object.StartByte() && child.EndByte() == object.EndByte() {
			continue
		}

		converted := c.convert(child)
		if converted != nil {
			args = append(args, converted)
		}
	}

	return args
}

// assignTargetType maps an assignment LHS CST type to its assignment tag.
//
//nolint:gochecknoglobals // Static mapping table.
var assignTargetType = map[string]node.Type{
	"identifier":        node.TypeLvasgn,
	"instance_variable": node.TypeIvasgn,
	"class_variable":    node.TypeCvasgn,
	"global_variable":   node.TypeGvasgn,
}

func (c *converter) convertAssignment(ts sitter.Node) *node.Node {
	left := ts.ChildByFieldName("left")
	right := c.field(ts, "right")

	switch left.Type() {
	case "constant":
		return c.newNode(node.TypeCasgn, ts, nil, node.Symbol(c.text(left)), right)
	case "scope_resolution":
		scope := c.field(left, "scope")
		name := left.ChildByFieldName("name")

		return c.newNode(node.TypeCasgn, ts, scope, node.Symbol(c.text(name)), right)
	case "element_reference":
		indexNode := c.convertElementReference(left)
		children := append(append([]any{}, indexNode.Children...), right)

		return c.newNode(node.TypeIndexAsgn, ts, children...)
	case "left_assignment_list":
		return c.newNode(node.TypeMasgn, ts, c.convert(left), right)
	case "call":
		// Attribute assignment: receiver.name = value becomes a send of
		// name= with the value as the sole argument.
		receiver := c.field(left, "receiver")
		method := left.ChildByFieldName("method")

		return c.newNode(node.TypeSend, ts, receiver, node.Symbol(c.text(method)+"="), right)
	default:
		if tag, ok := assignTargetType[left.Type()]; ok {
			return c.newNode(tag, ts, node.Symbol(c.text(left)), right)
		}

		return c.newNode(node.TypeLvasgn, ts, node.Symbol(c.text(left)), right)
	}
}

// assignTarget converts an LHS into its value-less assignment node, as
// used by for loops, rescue variables, and operator assignment.
func (c *converter) assignTarget(ts sitter.Node) *node.Node {
	if tag, ok := assignTargetType[ts.Type()]; ok {
		return c.newNode(tag, ts, node.Symbol(c.text(ts)))
	}

	if ts.Type() == "constant" {
		return c.newNode(node.TypeCasgn, ts, nil, node.Symbol(c.text(ts)))
	}

	if converted, ok := c.convert(ts).(*node.Node); ok {
		return converted
	}

	return c.newNode(node.TypeLvasgn, ts, node.Symbol(c.text(ts)))
}

func (c *converter) convertOperatorAssignment(ts sitter.Node) *node.Node {
	target := c.assignTarget(ts.ChildByFieldName("left"))
	right := c.field(ts, "right")
	operator := c.text(ts.ChildByFieldName("operator"))

	switch operator {
	case "||=":
		return c.newNode(node.TypeOrAsgn, ts, target, right)
	case "&&=":
		return c.newNode(node.TypeAndAsgn, ts, target, right)
	default:
		op := node.Symbol(strings.TrimSuffix(operator, "="))

		return c.newNode(node.TypeOpAsgn, ts, target, op, right)
	}
}

func (c *converter) convertTargets(ts sitter.Node) []any {
	var targets []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "comment" {
			continue
		}

		targets = append(targets, c.assignTarget(child))
	}

	return targets
}

// convertConditional handles if, unless, and elsif. The grammar represents
// unless as an if with the branches swapped.
func (c *converter) convertConditional(ts sitter.Node) *node.Node {
	condition := c.field(ts, "condition")
	consequence := c.field(ts, "consequence")
	alternative := c.field(ts, "alternative")

	if ts.Type() == "unless" {
		return c.newNode(node.TypeIf, ts, condition, alternative, consequence)
	}

	return c.newNode(node.TypeIf, ts, condition, consequence, alternative)
}

func (c *converter) convertLoop(ts sitter.Node) *node.Node {
	loopType := node.TypeWhile
	if ts.Type() == "until" {
		loopType = node.TypeUntil
	}

	return c.newNode(loopType, ts, c.field(ts, "condition"), c.field(ts, "body"))
}

// convertLoopModifier handles postfix while/until. A begin-wrapped body
// makes it a post-condition loop (the body runs at least once).
func (c *converter) convertLoopModifier(ts sitter.Node) *node.Node {
	bodyChild := ts.ChildByFieldName("body")
	condition := c.field(ts, "condition")
	body := c.field(ts, "body")

	isPost := bodyChild.Type() == "begin"
	isUntil := ts.Type() == "until_modifier"

	switch {
	case isPost && isUntil:
		return c.newNode(node.TypeUntilPost, ts, condition, body)
	case isPost:
		return c.newNode(node.TypeWhilePost, ts, condition, body)
	case isUntil:
		return c.newNode(node.TypeUntil, ts, condition, body)
	default:
		return c.newNode(node.TypeWhile, ts, condition, body)
	}
}

func (c *converter) convertFor(ts sitter.Node) *node.Node {
	pattern := c.assignTarget(ts.ChildByFieldName("pattern"))

	// The iterated collection sits inside an "in" wrapper child.
	value := ts.ChildByFieldName("value")

	var collection any
	if !value.IsNull() {
		collection = c.firstNamedChild(value)
	}

	return c.newNode(node.TypeFor, ts, pattern, collection, c.field(ts, "body"))
}

// convertCase builds a case or case_match node. The else branch is always
// appended (nil when absent) so the bracketing slice helpers hold.
func (c *converter) convertCase(ts sitter.Node, caseType node.Type, clauseType string) *node.Node {
	children := []any{c.field(ts, "value")}

	var elseBranch any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)

		switch child.Type() {
		case clauseType:
			children = append(children, c.convert(child))
		case "else":
			elseBranch = c.convert(child)
		}
	}

	children = append(children, elseBranch)

	return c.newNode(caseType, ts, children...)
}

func (c *converter) convertWhen(ts sitter.Node) *node.Node {
	var children []any

	var body any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)

		switch child.Type() {
		case "comment":
			continue
		case "then":
			body = c.convert(child)
		default:
			children = append(children, c.convert(child))
		}
	}

	children = append(children, body)

	return c.newNode(node.TypeWhen, ts, children...)
}

func (c *converter) convertInClause(ts sitter.Node) *node.Node {
	pattern := c.field(ts, "pattern")
	guard := c.field(ts, "guard")
	body := c.field(ts, "body")

	return c.newNode(node.TypeInPattern, ts, pattern, guard, body)
}

// convertBegin handles begin...end including rescue, else, and ensure
// clauses, producing the grammar's kwbegin/rescue/ensure nesting.
func (c *converter) convertBegin(ts sitter.Node) *node.Node {
	core := c.protectedBody(ts)

	if coreNode, ok := core.(*node.Node); ok && coreNode != nil {
		if coreNode.Type == node.TypeBegin {
			return c.newNode(node.TypeKwbegin, ts, coreNode.Children...)
		}

		return c.newNode(node.TypeKwbegin, ts, coreNode)
	}

	return c.newNode(node.TypeKwbegin, ts)
}

// protectedBody converts a statement container possibly carrying rescue,
// else, and ensure clauses. Used for begin blocks and method bodies.
func (c *converter) protectedBody(ts sitter.Node) any {
	var stmts []any

	var resbodies []any

	var elseBranch any

	var ensureStmts []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)

		switch child.Type() {
		case "comment":
			continue
		case "rescue":
			resbodies = append(resbodies, c.convertRescueClause(child))
		case "else":
			elseBranch = c.convert(child)
		case "ensure":
			ensureStmts = c.convertChildren(child)
		default:
			converted := c.convert(child)
			if converted != nil {
				stmts = append(stmts, converted)
			}
		}
	}

	core := c.wrap(ts, stmts)

	if len(resbodies) > 0 {
		children := append([]any{core}, resbodies...)
		children = append(children, elseBranch)
		core = c.newNode(node.TypeRescue, ts, children...)
	}

	if len(ensureStmts) > 0 {
		children := append([]any{core}, ensureStmts...)
		core = c.newNode(node.TypeEnsure, ts, children...)
	}

	return core
}

// convertRescueClause builds a resbody node: exception classes (as an
// array node, nil when bare), the capture variable (as an assignment
// target, nil when absent), and the handler body.
func (c *converter) convertRescueClause(ts sitter.Node) *node.Node {
	var exceptions any

	exceptionsChild := ts.ChildByFieldName("exceptions")
	if !exceptionsChild.IsNull() {
		exceptions = c.newNode(node.TypeArray, exceptionsChild, c.convertChildren(exceptionsChild)...)
	}

	var variable any

	variableChild := ts.ChildByFieldName("variable")
	if !variableChild.IsNull() {
		for idx := range variableChild.NamedChildCount() {
			variable = c.assignTarget(variableChild.NamedChild(idx))

			break
		}
	}

	return c.newNode(node.TypeResbody, ts, exceptions, variable, c.field(ts, "body"))
}

func (c *converter) convertRescueModifier(ts sitter.Node) *node.Node {
	body := c.field(ts, "body")
	handler := c.field(ts, "handler")

	resbody := node.New(node.TypeResbody, nil, nil, handler).WithSource(c.source)

	return c.newNode(node.TypeRescue, ts, body, resbody, nil)
}

func (c *converter) convertMethod(ts sitter.Node) *node.Node {
	name := node.Symbol(c.text(ts.ChildByFieldName("name")))

	return c.newNode(node.TypeDef, ts, name, c.parameterList(ts), c.methodBody(ts))
}

func (c *converter) convertSingletonMethod(ts sitter.Node) *node.Node {
	object := c.field(ts, "object")
	name := node.Symbol(c.text(ts.ChildByFieldName("name")))

	return c.newNode(node.TypeDefs, ts, object, name, c.parameterList(ts), c.methodBody(ts))
}

// parameterList returns the converted parameter list, or an empty args
// node for parameterless definitions.
func (c *converter) parameterList(ts sitter.Node) *node.Node {
	params := ts.ChildByFieldName("parameters")
	if params.IsNull() {
		return node.New(node.TypeArgs).WithSource(c.source)
	}

	converted, ok := c.convert(params).(*node.Node)
	if !ok {
		return node.New(node.TypeArgs).WithSource(c.source)
	}

	return converted
}

// methodBody converts a method's statements, honoring rescue and ensure
// clauses attached directly to the definition.
func (c *converter) methodBody(ts sitter.Node) any {
	body := ts.ChildByFieldName("body")
	if !body.IsNull() {
		return c.convert(body)
	}

	parameters := ts.ChildByFieldName("parameters")
	name := ts.ChildByFieldName("name")
	object := ts.ChildByFieldName("object")

	for idx := range ts.NamedChildCount() {
		switch ts.NamedChild(idx).Type() {
		case "rescue", "ensure":
			return c.protectedMethodBody(ts, parameters, name, object)
		}
	}

	return c.plainMethodBody(ts, parameters, name, object)
}

func sameSpan(child, other sitter.Node) bool {
	return !other.IsNull() && child.StartByte() == other.StartByte() && child.EndByte() == other.EndByte()
}

func (c *converter) plainMethodBody(ts sitter.Node, skip ...sitter.Node) any {
	var stmts []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "comment" || anySameSpan(child, skip) {
			continue
		}

		converted := c.convert(child)
		if converted != nil {
			stmts = append(stmts, converted)
		}
	}

	return c.wrap(ts, stmts)
}

func (c *converter) protectedMethodBody(ts sitter.Node, skip ...sitter.Node) any {
	var stmts []any

	var resbodies []any

	var elseBranch any

	var ensureStmts []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "comment" || anySameSpan(child, skip) {
			continue
		}

		switch child.Type() {
		case "rescue":
			resbodies = append(resbodies, c.convertRescueClause(child))
		case "else":
			elseBranch = c.convert(child)
		case "ensure":
			ensureStmts = c.convertChildren(child)
		default:
			converted := c.convert(child)
			if converted != nil {
				stmts = append(stmts, converted)
			}
		}
	}

	core := c.wrap(ts, stmts)

	if len(resbodies) > 0 {
		children := append([]any{core}, resbodies...)
		children = append(children, elseBranch)
		core = c.newNode(node.TypeRescue, ts, children...)
	}

	if len(ensureStmts) > 0 {
		children := append([]any{core}, ensureStmts...)
		core = c.newNode(node.TypeEnsure, ts, children...)
	}

	return core
}

func anySameSpan(child sitter.Node, others []sitter.Node) bool {
	for _, other := range others {
		if sameSpan(child, other) {
			return true
		}
	}

	return false
}

// convertParameters builds an args node from a parameter list.
func (c *converter) convertParameters(ts sitter.Node) *node.Node {
	var params []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)

		converted := c.convertParameter(child)
		if converted != nil {
			params = append(params, converted)
		}
	}

	return c.newNode(node.TypeArgs, ts, params...)
}

func (c *converter) convertParameter(ts sitter.Node) any {
	switch ts.Type() {
	case "comment":
		return nil
	case "identifier":
		return c.newNode(node.TypeArg, ts, node.Symbol(c.text(ts)))
	case "optional_parameter":
		name := node.Symbol(c.text(ts.ChildByFieldName("name")))

		return c.newNode(node.TypeOptarg, ts, name, c.field(ts, "value"))
	case "splat_parameter":
		return c.namedParameter(ts, node.TypeRestarg)
	case "hash_splat_parameter":
		return c.namedParameter(ts, node.TypeKwrestarg)
	case "hash_splat_nil":
		return c.newNode(node.TypeKwnilarg, ts)
	case "keyword_parameter":
		name := node.Symbol(c.text(ts.ChildByFieldName("name")))

		value := ts.ChildByFieldName("value")
		if value.IsNull() {
			return c.newNode(node.TypeKwarg, ts, name)
		}

		return c.newNode(node.TypeKwoptarg, ts, name, c.convert(value))
	case "block_parameter":
		name := ts.ChildByFieldName("name")
		if name.IsNull() {
			return c.newNode(node.TypeBlockarg, ts)
		}

		return c.newNode(node.TypeBlockarg, ts, node.Symbol(c.text(name)))
	case "destructured_parameter":
		return c.newNode(node.TypeMlhs, ts, c.convertTargets(ts)...)
	case "forward_parameter":
		return c.newNode(node.TypeForwardArg, ts)
	default:
		return c.convert(ts)
	}
}

func (c *converter) namedParameter(ts sitter.Node, tag node.Type) *node.Node {
	name := ts.ChildByFieldName("name")
	if name.IsNull() {
		return c.newNode(tag, ts)
	}

	return c.newNode(tag, ts, node.Symbol(c.text(name)))
}

func (c *converter) convertClass(ts sitter.Node) *node.Node {
	name := c.field(ts, "name")

	var superclass any

	superChild := ts.ChildByFieldName("superclass")
	if !superChild.IsNull() {
		superclass = c.firstNamedChild(superChild)
	}

	return c.newNode(node.TypeClass, ts, name, superclass, c.bodyField(ts))
}

// bodyField converts the "body" field of a container construct, or
// collects trailing statements when the grammar exposes none.
func (c *converter) bodyField(ts sitter.Node) any {
	body := ts.ChildByFieldName("body")
	if !body.IsNull() {
		return c.convert(body)
	}

	name := ts.ChildByFieldName("name")
	value := ts.ChildByFieldName("value")
	superclass := ts.ChildByFieldName("superclass")

	var stmts []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)
		if child.Type() == "comment" || sameSpan(child, name) || sameSpan(child, value) || sameSpan(child, superclass) {
			continue
		}

		converted := c.convert(child)
		if converted != nil {
			stmts = append(stmts, converted)
		}
	}

	return c.wrap(ts, stmts)
}

// convertLambda renders ->(x) { } as a block over a lambda send, the
// grammar's representation of literal lambdas.
func (c *converter) convertLambda(ts sitter.Node) *node.Node {
	call := node.New(node.TypeSend, nil, node.Symbol("lambda")).WithSource(c.source)

	params := c.field(ts, "parameters")
	if params == nil {
		params = node.New(node.TypeArgs).WithSource(c.source)
	}

	var body any

	bodyChild := ts.ChildByFieldName("body")
	if !bodyChild.IsNull() {
		// The lambda body is itself a brace or do block node.
		switch bodyChild.Type() {
		case "block", "do_block":
			body = c.field(bodyChild, "body")
			if body == nil {
				body = c.wrap(bodyChild, c.blockStatements(bodyChild))
			}
		default:
			body = c.convert(bodyChild)
		}
	}

	return c.newNode(node.TypeBlock, ts, call, params, body)
}

func (c *converter) convertSuper(ts sitter.Node) *node.Node {
	args := c.callArguments(ts)
	if len(args) == 0 && ts.NamedChildCount() == 0 {
		return c.newNode(node.TypeZsuper, ts)
	}

	return c.newNode(node.TypeSuper, ts, args...)
}

func (c *converter) convertAlias(ts sitter.Node) *node.Node {
	names := c.convertMethodNames(ts)

	newName, oldName := any(nil), any(nil)
	if len(names) > 0 {
		newName = names[0]
	}

	if len(names) > 1 {
		oldName = names[1]
	}

	return c.newNode(node.TypeAlias, ts, newName, oldName)
}

// convertMethodNames converts alias/undef operands to sym nodes.
func (c *converter) convertMethodNames(ts sitter.Node) []any {
	var names []any

	for idx := range ts.NamedChildCount() {
		child := ts.NamedChild(idx)

		switch child.Type() {
		case "comment":
			continue
		case "identifier", "constant", "operator":
			names = append(names, c.newNode(node.TypeSym, child, node.Symbol(c.text(child))))
		default:
			converted := c.convert(child)
			if converted != nil {
				names = append(names, converted)
			}
		}
	}

	return names
}
