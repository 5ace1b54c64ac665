package ast

import (
	"strings"

	"github.com/kestrel-lang/kestrel/core"
)

// Two serializations per node: ToString approximates source syntax,
// ShowRaw names the node kind and every field with consistent
// indentation. Both are pure: they read the tree and the symbol table
// and mutate neither. They are the stable surface for snapshot tests.

func printTabs(buf *strings.Builder, count int) {
	for i := 0; i < count; i++ {
		buf.WriteString("  ")
	}
}

func printElems(gs *core.GlobalState, buf *strings.Builder, elems []Expression, tabs int) {
	first := true
	didShadow := false
	for _, e := range elems {
		if !first {
			if _, shadow := e.(*ShadowArg); shadow && !didShadow {
				buf.WriteString("; ")
				didShadow = true
			} else {
				buf.WriteString(", ")
			}
		}
		first = false
		buf.WriteString(e.ToString(gs, tabs+1))
	}
}

func printArgs(gs *core.GlobalState, buf *strings.Builder, args []Expression, tabs int) {
	buf.WriteString("(")
	printElems(gs, buf, args, tabs)
	buf.WriteString(")")
}

func (n *ClassDef) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	if n.Kind == ModuleKind {
		buf.WriteString("module ")
	} else {
		buf.WriteString("class ")
	}
	buf.WriteString(n.Name.ToString(gs, tabs))
	buf.WriteString("<" + n.Symbol.Show(gs) + "> < ")
	printArgs(gs, &buf, n.Ancestors, tabs)
	buf.WriteString("\n")

	for _, a := range n.RHS {
		printTabs(&buf, tabs+1)
		buf.WriteString(a.ToString(gs, tabs+1))
		buf.WriteString("\n")
	}

	printTabs(&buf, tabs)
	buf.WriteString("end")
	return buf.String()
}

func (n *ClassDef) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("kind = ")
	if n.Kind == ModuleKind {
		buf.WriteString("module\n")
	} else {
		buf.WriteString("class\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("name = " + n.Name.ShowRaw(gs, tabs+1) + "<" + n.Symbol.Show(gs) + ">\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("ancestors = [")
	for i, a := range n.Ancestors {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.ShowRaw(gs, tabs+2))
	}
	buf.WriteString("]\n")

	printTabs(&buf, tabs+1)
	buf.WriteString("rhs = [\n")
	for i, a := range n.RHS {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2))
		buf.WriteString("\n")
		if i != len(n.RHS)-1 {
			buf.WriteString("\n")
		}
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *MethodDef) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	if n.IsSelf() {
		buf.WriteString("def self.")
	} else {
		buf.WriteString("def ")
	}
	buf.WriteString(n.Name.Show(gs) + "<" + n.Symbol.Show(gs) + ">")
	buf.WriteString("(")
	for i, a := range n.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.ToString(gs, tabs+1))
	}
	buf.WriteString(")\n")
	printTabs(&buf, tabs+1)
	buf.WriteString(n.RHS.ToString(gs, tabs+1))
	buf.WriteString("\n")
	printTabs(&buf, tabs)
	buf.WriteString("end")
	return buf.String()
}

func (n *MethodDef) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)

	buf.WriteString("flags =")
	flagNames := []struct {
		bit  uint32
		name string
	}{
		{MethodSelf, "self"},
		{MethodSynthesized, "synthesized"},
	}
	for _, ent := range flagNames {
		if n.Flags&ent.bit != 0 {
			buf.WriteString(" " + ent.name)
		}
	}
	if n.Flags == 0 {
		buf.WriteString(" 0")
	}
	buf.WriteString("\n")

	printTabs(&buf, tabs+1)
	buf.WriteString("name = " + n.Name.Show(gs) + "<" + n.Symbol.Show(gs) + ">\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("args = [")
	for i, a := range n.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.ShowRaw(gs, tabs+2))
	}
	buf.WriteString("]\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("rhs = " + n.RHS.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *If) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("if " + n.Cond.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString(n.Then.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("else\n")
	printTabs(&buf, tabs+1)
	buf.WriteString(n.Else.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("end")
	return buf.String()
}

func (n *If) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("cond = " + n.Cond.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("thenp = " + n.Then.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("elsep = " + n.Else.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *While) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("while " + n.Cond.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString(n.Body.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("end")
	return buf.String()
}

func (n *While) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("cond = " + n.Cond.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("body = " + n.Body.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Break) ToString(gs *core.GlobalState, tabs int) string {
	return "break(" + n.Expr.ToString(gs, tabs+1) + ")"
}

func (n *Break) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs+1) + " }"
}

func (n *Next) ToString(gs *core.GlobalState, tabs int) string {
	return "next(" + n.Expr.ToString(gs, tabs+1) + ")"
}

func (n *Next) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs+1) + " }"
}

func (n *Return) ToString(gs *core.GlobalState, tabs int) string {
	return "return " + n.Expr.ToString(gs, tabs+1)
}

func (n *Return) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs+1) + " }"
}

func (n *Retry) ToString(gs *core.GlobalState, tabs int) string {
	return "retry"
}

func (n *Retry) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{}"
}

func (n *Yield) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("yield")
	printArgs(gs, &buf, n.Args, tabs)
	return buf.String()
}

func (n *Yield) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("args = [\n")
	for _, a := range n.Args {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *RescueCase) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("rescue")
	for i, exc := range n.Exceptions {
		if i == 0 {
			buf.WriteString(" ")
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(exc.ToString(gs, tabs))
	}
	buf.WriteString(" => " + n.Var.ToString(gs, tabs))
	buf.WriteString("\n")
	printTabs(&buf, tabs)
	buf.WriteString(n.Body.ToString(gs, tabs))
	return buf.String()
}

func (n *RescueCase) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("exceptions = [\n")
	for _, a := range n.Exceptions {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("var = " + n.Var.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("body = " + n.Body.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Rescue) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.Body.ToString(gs, tabs))
	for _, c := range n.RescueCases {
		buf.WriteString("\n")
		printTabs(&buf, tabs-1)
		buf.WriteString(c.ToString(gs, tabs))
	}
	if !IsEmptyTree(n.Else) {
		buf.WriteString("\n")
		printTabs(&buf, tabs-1)
		buf.WriteString("else\n")
		printTabs(&buf, tabs)
		buf.WriteString(n.Else.ToString(gs, tabs))
	}
	if !IsEmptyTree(n.Ensure) {
		buf.WriteString("\n")
		printTabs(&buf, tabs-1)
		buf.WriteString("ensure\n")
		printTabs(&buf, tabs)
		buf.WriteString(n.Ensure.ToString(gs, tabs))
	}
	return buf.String()
}

func (n *Rescue) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("body = " + n.Body.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("rescueCases = [\n")
	for _, c := range n.RescueCases {
		printTabs(&buf, tabs+2)
		buf.WriteString(c.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("else = " + n.Else.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("ensure = " + n.Ensure.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Field) ToString(gs *core.GlobalState, tabs int) string {
	return n.Symbol.FullName(gs)
}

func (n *Field) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("symbol = " + n.Symbol.Show(gs) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Local) ToString(gs *core.GlobalState, tabs int) string {
	return n.LocalVar.Show(gs)
}

func (n *Local) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("localVariable = " + n.LocalVar.Show(gs) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (k VarKind) String() string {
	switch k {
	case VarLocal:
		return "Local"
	case VarInstance:
		return "Instance"
	case VarClass:
		return "Class"
	case VarGlobal:
		return "Global"
	}
	return "Unknown"
}

func (n *UnresolvedIdent) ToString(gs *core.GlobalState, tabs int) string {
	return n.Name.Show(gs)
}

func (n *UnresolvedIdent) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("kind = " + n.Kind.String() + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("name = " + n.Name.Show(gs) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *RestArg) ToString(gs *core.GlobalState, tabs int) string {
	return "*" + n.Expr.ToString(gs, tabs)
}

func (n *RestArg) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs) + " }"
}

func (n *KeywordArg) ToString(gs *core.GlobalState, tabs int) string {
	return n.Expr.ToString(gs, tabs) + ":"
}

func (n *KeywordArg) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs) + " }"
}

func (n *OptionalArg) ToString(gs *core.GlobalState, tabs int) string {
	return n.Expr.ToString(gs, tabs) + " = " + n.Default.ToString(gs, tabs)
}

func (n *OptionalArg) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("expr = " + n.Expr.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("default = " + n.Default.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *ShadowArg) ToString(gs *core.GlobalState, tabs int) string {
	return n.Expr.ToString(gs, tabs)
}

func (n *ShadowArg) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs) + " }"
}

func (n *BlockArg) ToString(gs *core.GlobalState, tabs int) string {
	return "&" + n.Expr.ToString(gs, tabs)
}

func (n *BlockArg) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ expr = " + n.Expr.ShowRaw(gs, tabs) + " }"
}

func (n *Assign) ToString(gs *core.GlobalState, tabs int) string {
	return n.LHS.ToString(gs, tabs) + " = " + n.RHS.ToString(gs, tabs)
}

func (n *Assign) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("lhs = " + n.LHS.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("rhs = " + n.RHS.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Send) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.Recv.ToString(gs, tabs) + "." + n.Fun.Show(gs))
	printArgs(gs, &buf, n.Args, tabs)
	if n.Block != nil {
		buf.WriteString(n.Block.ToString(gs, tabs))
	}
	return buf.String()
}

func (n *Send) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("recv = " + n.Recv.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("fun = " + n.Fun.Show(gs) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("block = ")
	if n.Block != nil {
		buf.WriteString(n.Block.ShowRaw(gs, tabs+1) + "\n")
	} else {
		buf.WriteString("nil\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("args = [\n")
	for _, a := range n.Args {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Cast) ToString(gs *core.GlobalState, tabs int) string {
	return "T." + n.Cast.Show(gs) +
		"(" + n.Arg.ToString(gs, tabs) + ", " + n.TypeExpr.ToString(gs, tabs) + ")"
}

func (n *Cast) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("cast = " + n.Cast.Show(gs) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("arg = " + n.Arg.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("type = " + n.TypeExpr.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *ZSuperArgs) ToString(gs *core.GlobalState, tabs int) string {
	return "ZSuperArgs"
}

func (n *ZSuperArgs) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ }"
}

func (n *Self) ToString(gs *core.GlobalState, tabs int) string {
	if n.Claz.Exists() {
		return "self(" + n.Claz.Show(gs) + ")"
	}
	return "self(TODO)"
}

func (n *Self) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ claz = " + n.Claz.Show(gs) + " }"
}

func (n *Block) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(" do |")
	printElems(gs, &buf, n.Args, tabs+1)
	buf.WriteString("|\n")
	printTabs(&buf, tabs+1)
	buf.WriteString(n.Body.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("end")
	return buf.String()
}

func (n *Block) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + " {\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("args = [\n")
	for _, a := range n.Args {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("body = " + n.Body.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Hash) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("{")
	for i, key := range n.Keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(key.ToString(gs, tabs+1))
		buf.WriteString(" => ")
		buf.WriteString(n.Values[i].ToString(gs, tabs+1))
	}
	buf.WriteString("}")
	return buf.String()
}

func (n *Hash) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("pairs = [\n")
	for i, key := range n.Keys {
		printTabs(&buf, tabs+2)
		buf.WriteString("[\n")
		printTabs(&buf, tabs+3)
		buf.WriteString("key = " + key.ShowRaw(gs, tabs+3) + "\n")
		printTabs(&buf, tabs+3)
		buf.WriteString("value = " + n.Values[i].ShowRaw(gs, tabs+3) + "\n")
		printTabs(&buf, tabs+2)
		buf.WriteString("]\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Array) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("[")
	printElems(gs, &buf, n.Elems, tabs)
	buf.WriteString("]")
	return buf.String()
}

func (n *Array) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("elems = [\n")
	for _, a := range n.Elems {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("]\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *Literal) ToString(gs *core.GlobalState, tabs int) string {
	return n.Value.Show(gs)
}

func (n *Literal) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName() + "{ value = " + n.ToString(gs, 0) + " }"
}

func (n *UnresolvedConstantLit) ToString(gs *core.GlobalState, tabs int) string {
	return n.Scope.ToString(gs, tabs) + "::" + n.Cnst.Show(gs)
}

func (n *UnresolvedConstantLit) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("scope = " + n.Scope.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("cnst = " + n.Cnst.Show(gs) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *ConstantLit) ToString(gs *core.GlobalState, tabs int) string {
	if n.Symbol.Exists() {
		return n.Symbol.FullName(gs)
	}
	if n.TypeAlias != nil {
		return n.TypeAlias.ToString(gs, tabs)
	}
	return "Unresolved: " + n.Original.ToString(gs, tabs)
}

func (n *ConstantLit) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("orig = ")
	if n.Original != nil {
		buf.WriteString(n.Original.ShowRaw(gs, tabs+1))
	} else {
		buf.WriteString("nil")
	}
	buf.WriteString("\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("symbol = " + n.Symbol.FullName(gs) + "\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("typeAlias = ")
	if n.TypeAlias != nil {
		buf.WriteString(n.TypeAlias.ShowRaw(gs, tabs+1))
	} else {
		buf.WriteString("nil")
	}
	buf.WriteString("\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *InsSeq) ToString(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString("begin\n")
	for _, a := range n.Stats {
		printTabs(&buf, tabs+1)
		buf.WriteString(a.ToString(gs, tabs+1) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString(n.Expr.ToString(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("end")
	return buf.String()
}

func (n *InsSeq) ShowRaw(gs *core.GlobalState, tabs int) string {
	var buf strings.Builder
	buf.WriteString(n.NodeName() + "{\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("stats = [\n")
	for _, a := range n.Stats {
		printTabs(&buf, tabs+2)
		buf.WriteString(a.ShowRaw(gs, tabs+2) + "\n")
	}
	printTabs(&buf, tabs+1)
	buf.WriteString("],\n")
	printTabs(&buf, tabs+1)
	buf.WriteString("expr = " + n.Expr.ShowRaw(gs, tabs+1) + "\n")
	printTabs(&buf, tabs)
	buf.WriteString("}")
	return buf.String()
}

func (n *EmptyTree) ToString(gs *core.GlobalState, tabs int) string {
	return "<emptyTree>"
}

func (n *EmptyTree) ShowRaw(gs *core.GlobalState, tabs int) string {
	return n.NodeName()
}
