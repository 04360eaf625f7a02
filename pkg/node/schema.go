package node

import "sort"

// Grammar tag constants. One constant per supported grammar production.
const (
	TypeAlias            = Type("alias")
	TypeAnd              = Type("and")
	TypeAndAsgn          = Type("and_asgn")
	TypeArg              = Type("arg")
	TypeArgs             = Type("args")
	TypeArray            = Type("array")
	TypeArrayPattern     = Type("array_pattern")
	TypeBackRef          = Type("back_ref")
	TypeBegin            = Type("begin")
	TypeBlock            = Type("block")
	TypeBlockPass        = Type("block_pass")
	TypeBlockarg         = Type("blockarg")
	TypeBreak            = Type("break")
	TypeCase             = Type("case")
	TypeCaseMatch        = Type("case_match")
	TypeCasgn            = Type("casgn")
	TypeCbase            = Type("cbase")
	TypeClass            = Type("class")
	TypeComplex          = Type("complex")
	TypeConst            = Type("const")
	TypeConstPattern     = Type("const_pattern")
	TypeCsend            = Type("csend")
	TypeCvar             = Type("cvar")
	TypeCvasgn           = Type("cvasgn")
	TypeDef              = Type("def")
	TypeDefined          = Type("defined?")
	TypeDefs             = Type("defs")
	TypeDstr             = Type("dstr")
	TypeDsym             = Type("dsym")
	TypeEFlipFlop        = Type("eflipflop")
	TypeEmptyElse        = Type("empty_else")
	TypeEnsure           = Type("ensure")
	TypeErange           = Type("erange")
	TypeFalse            = Type("false")
	TypeFindPattern      = Type("find_pattern")
	TypeFloat            = Type("float")
	TypeFor              = Type("for")
	TypeForwardArg       = Type("forward_arg")
	TypeForwardArgs      = Type("forward_args")
	TypeForwardedArgs    = Type("forwarded_args")
	TypeGvar             = Type("gvar")
	TypeGvasgn           = Type("gvasgn")
	TypeHash             = Type("hash")
	TypeHashPattern      = Type("hash_pattern")
	TypeIf               = Type("if")
	TypeIfGuard          = Type("if_guard")
	TypeIFlipFlop        = Type("iflipflop")
	TypeIndex            = Type("index")
	TypeIndexAsgn        = Type("indexasgn")
	TypeInPattern        = Type("in_pattern")
	TypeInt              = Type("int")
	TypeIrange           = Type("irange")
	TypeIvar             = Type("ivar")
	TypeIvasgn           = Type("ivasgn")
	TypeKwarg            = Type("kwarg")
	TypeKwbegin          = Type("kwbegin")
	TypeKwnilarg         = Type("kwnilarg")
	TypeKwoptarg         = Type("kwoptarg")
	TypeKwrestarg        = Type("kwrestarg")
	TypeKwsplat          = Type("kwsplat")
	TypeLambda           = Type("lambda")
	TypeLvar             = Type("lvar")
	TypeLvasgn           = Type("lvasgn")
	TypeMasgn            = Type("masgn")
	TypeMatchAlt         = Type("match_alt")
	TypeMatchAs          = Type("match_as")
	TypeMatchCurrentLine = Type("match_current_line")
	TypeMatchNilPattern  = Type("match_nil_pattern")
	TypeMatchPattern     = Type("match_pattern")
	TypeMatchPatternP    = Type("match_pattern_p")
	TypeMatchRest        = Type("match_rest")
	TypeMatchVar         = Type("match_var")
	TypeMatchWithLvasgn  = Type("match_with_lvasgn")
	TypeMlhs             = Type("mlhs")
	TypeModule           = Type("module")
	TypeNext             = Type("next")
	TypeNil              = Type("nil")
	TypeNthRef           = Type("nth_ref")
	TypeNumblock         = Type("numblock")
	TypeOpAsgn           = Type("op_asgn")
	TypeOptarg           = Type("optarg")
	TypeOr               = Type("or")
	TypeOrAsgn           = Type("or_asgn")
	TypePair             = Type("pair")
	TypePin              = Type("pin")
	TypePostexe          = Type("postexe")
	TypePreexe           = Type("preexe")
	TypeProcarg0         = Type("procarg0")
	TypeRational         = Type("rational")
	TypeRedo             = Type("redo")
	TypeRegexp           = Type("regexp")
	TypeRegopt           = Type("regopt")
	TypeResbody          = Type("resbody")
	TypeRescue           = Type("rescue")
	TypeRestarg          = Type("restarg")
	TypeRetry            = Type("retry")
	TypeReturn           = Type("return")
	TypeSclass           = Type("sclass")
	TypeSelf             = Type("self")
	TypeSend             = Type("send")
	TypeShadowarg        = Type("shadowarg")
	TypeSplat            = Type("splat")
	TypeStr              = Type("str")
	TypeSuper            = Type("super")
	TypeSym              = Type("sym")
	TypeTrue             = Type("true")
	TypeUndef            = Type("undef")
	TypeUnlessGuard      = Type("unless_guard")
	TypeUntil            = Type("until")
	TypeUntilPost        = Type("until_post")
	TypeWhen             = Type("when")
	TypeWhile            = Type("while")
	TypeWhilePost        = Type("while_post")
	TypeXstr             = Type("xstr")
	TypeYield            = Type("yield")
	TypeZsuper           = Type("zsuper")
)

// typeChildren is the tag schema: for every supported grammar tag, the
// ordered list of semantic slot names matching the node's positional
// children. Positions are significant; an entry's length never exceeds the
// child count of a well-formed node of that tag (optional trailing slots
// hold nil).
//
// Slots resolved by derived helpers rather than a plain index lookup
// (arguments, body, ...) still appear here so the accessor surface is
// complete; see accessor.go for the override dispatch.
//
//nolint:gochecknoglobals // Static schema table, never mutated.
var typeChildren = map[Type][]string{
	TypeAlias:            {"new_name", "old_name"},
	TypeAnd:              {"left_value", "right_value"},
	TypeAndAsgn:          {"variable", "value"},
	TypeArg:              {"name"},
	TypeArgs:             {},
	TypeArray:            {"elements"},
	TypeArrayPattern:     {"elements"},
	TypeBackRef:          {"name"},
	TypeBegin:            {"body"},
	TypeBlock:            {"caller", "arguments", "body"},
	TypeBlockPass:        {"value"},
	TypeBlockarg:         {"name"},
	TypeBreak:            {},
	TypeCase:             {"expression", "when_statements", "else_statement"},
	TypeCaseMatch:        {"expression", "in_statements", "else_statement"},
	TypeCasgn:            {"parent_const", "name", "value"},
	TypeCbase:            {},
	TypeClass:            {"name", "parent_class", "body"},
	TypeComplex:          {"value"},
	TypeConst:            {"parent_const", "name"},
	TypeConstPattern:     {"const", "pattern"},
	TypeCsend:            {"receiver", "message", "arguments"},
	TypeCvar:             {"name"},
	TypeCvasgn:           {"variable", "value"},
	TypeDef:              {"name", "arguments", "body"},
	TypeDefined:          {"arguments"},
	TypeDefs:             {"self", "name", "arguments", "body"},
	TypeDstr:             {"elements"},
	TypeDsym:             {"elements"},
	TypeEFlipFlop:        {"begin", "end"},
	TypeEmptyElse:        {},
	TypeEnsure:           {"body", "ensure_body"},
	TypeErange:           {"begin", "end"},
	TypeFalse:            {},
	TypeFindPattern:      {"elements"},
	TypeFloat:            {"value"},
	TypeFor:              {"variable", "expression", "body"},
	TypeForwardArg:       {},
	TypeForwardArgs:      {},
	TypeForwardedArgs:    {},
	TypeGvar:             {"name"},
	TypeGvasgn:           {"variable", "value"},
	TypeHash:             {"pairs"},
	TypeHashPattern:      {"pairs"},
	TypeIf:               {"expression", "if_statement", "else_statement"},
	TypeIfGuard:          {"expression"},
	TypeIFlipFlop:        {"begin", "end"},
	TypeIndex:            {"expression", "indices"},
	TypeIndexAsgn:        {"expression", "indices", "value"},
	TypeInPattern:        {"pattern", "guard", "body"},
	TypeInt:              {"value"},
	TypeIrange:           {"begin", "end"},
	TypeIvar:             {"name"},
	TypeIvasgn:           {"variable", "value"},
	TypeKwarg:            {"name"},
	TypeKwbegin:          {"body"},
	TypeKwnilarg:         {},
	TypeKwoptarg:         {"name", "value"},
	TypeKwrestarg:        {"name"},
	TypeKwsplat:          {"value"},
	TypeLambda:           {},
	TypeLvar:             {"name"},
	TypeLvasgn:           {"variable", "value"},
	TypeMasgn:            {"variable", "value"},
	TypeMatchAlt:         {"left", "right"},
	TypeMatchAs:          {"value", "name"},
	TypeMatchCurrentLine: {"regexp"},
	TypeMatchNilPattern:  {},
	TypeMatchPattern:     {"value", "pattern"},
	TypeMatchPatternP:    {"value", "pattern"},
	TypeMatchRest:        {"name"},
	TypeMatchVar:         {"name"},
	TypeMatchWithLvasgn:  {"regexp", "expression"},
	TypeMlhs:             {"elements"},
	TypeModule:           {"name", "body"},
	TypeNext:             {},
	TypeNil:              {},
	TypeNthRef:           {"name"},
	TypeNumblock:         {"caller", "arguments_count", "body"},
	TypeOpAsgn:           {"variable", "operator", "value"},
	TypeOptarg:           {"name", "value"},
	TypeOr:               {"left_value", "right_value"},
	TypeOrAsgn:           {"variable", "value"},
	TypePair:             {"key", "value"},
	TypePin:              {"variable"},
	TypePostexe:          {"body"},
	TypePreexe:           {"body"},
	TypeProcarg0:         {},
	TypeRational:         {"value"},
	TypeRedo:             {},
	TypeRegexp:           {"elements", "options"},
	TypeRegopt:           {},
	TypeResbody:          {"exceptions", "variable", "body"},
	TypeRescue:           {"body", "rescue_bodies", "else_statement"},
	TypeRestarg:          {"name"},
	TypeRetry:            {},
	TypeReturn:           {"value"},
	TypeSclass:           {"expression", "body"},
	TypeSelf:             {},
	TypeSend:             {"receiver", "message", "arguments"},
	TypeShadowarg:        {"name"},
	TypeSplat:            {"value"},
	TypeStr:              {"value"},
	TypeSuper:            {"arguments"},
	TypeSym:              {"value"},
	TypeTrue:             {},
	TypeUndef:            {"arguments"},
	TypeUnlessGuard:      {"expression"},
	TypeUntil:            {"expression", "body"},
	TypeUntilPost:        {"expression", "body"},
	TypeWhen:             {"expression", "body"},
	TypeWhile:            {"expression", "body"},
	TypeWhilePost:        {"expression", "body"},
	TypeXstr:             {"elements"},
	TypeYield:            {"arguments"},
	TypeZsuper:           {},
}

// KnownType reports whether the tag schema has an entry for t.
func KnownType(t Type) bool {
	_, ok := typeChildren[t]

	return ok
}

// SlotNames returns the ordered slot names declared for t, and whether the
// schema knows the tag at all.
func SlotNames(t Type) ([]string, bool) {
	names, ok := typeChildren[t]

	return names, ok
}

// slotIndex returns the positional index of the named slot under t.
func slotIndex(t Type, name string) (int, bool) {
	names, ok := typeChildren[t]
	if !ok {
		return 0, false
	}

	for idx, candidate := range names {
		if candidate == name {
			return idx, true
		}
	}

	return 0, false
}

// Types returns every tag in the schema, sorted.
func Types() []Type {
	types := make([]Type, 0, len(typeChildren))

	for t := range typeChildren {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// AccessorNames returns the sorted union of every slot name declared
// anywhere in the tag schema. This is the complete static accessor surface.
func AccessorNames() []string {
	seen := make(map[string]struct{})

	for _, names := range typeChildren {
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	union := make([]string, 0, len(seen))

	for name := range seen {
		union = append(union, name)
	}

	sort.Strings(union)

	return union
}
