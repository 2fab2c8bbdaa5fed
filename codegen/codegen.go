// Package codegen serializes lowered patterns into Go source.
//
// The emitted file contains a constructor returning a runtime Engine and the
// pattern's step function: a direct rendering of the token program where a
// failed top-level test returns false and a failed test inside a quantifier
// exits that quantifier's loop.
package codegen

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/nativeregex/ehir"
	"github.com/coregx/nativeregex/internal/conv"
)

// Config configures code emission.
type Config struct {
	// PackageName is the package clause of the emitted file.
	PackageName string

	// RuntimePath is the import path of the runtime package the emitted
	// code calls into.
	RuntimePath string
}

// DefaultConfig returns the emission configuration used by Translate.
func DefaultConfig() Config {
	return Config{
		PackageName: "matchers",
		RuntimePath: "github.com/coregx/nativeregex/native",
	}
}

// Emit renders a lowered pattern as a Go source file. The identifier is
// validated before any code is produced; pattern is only quoted into the
// constructor's doc comment.
func Emit(prog *ehir.Program, pattern, identifier string, cfg Config) (string, error) {
	if err := ValidateIdentifier(identifier); err != nil {
		return "", err
	}
	def := DefaultConfig()
	if cfg.PackageName == "" {
		cfg.PackageName = def.PackageName
	}
	if cfg.RuntimePath == "" {
		cfg.RuntimePath = def.RuntimePath
	}

	g := &generator{rt: cfg.RuntimePath}
	stepName := stepFuncName(identifier)

	f := jen.NewFile(cfg.PackageName)
	f.HeaderComment("Code generated by nativeregex. DO NOT EDIT.")

	f.Commentf("New%s returns the compiled matcher for the pattern %q.", identifier, pattern)
	f.Func().Id("New" + identifier).Params().Op("*").Qual(g.rt, "Engine").Block(
		jen.Return(jen.Qual(g.rt, "NewEngine").Call(jen.Qual(g.rt, "EngineConfig").Values(jen.Dict{
			jen.Id("Step"):          jen.Id(stepName),
			jen.Id("NamedGroups"):   g.namedGroupsExpr(prog.NamedGroups),
			jen.Id("CaptureCount"):  jen.Lit(prog.CaptureCount),
			jen.Id("LiteralPrefix"): jen.Lit(prog.LiteralPrefix),
		}))),
	)

	body := []jen.Code{
		jen.Id("character").Op(":=").Id("chars").Dot("Advance").Call(),
		jen.Id("capture0Start").Op(":=").Id("character").Dot("Index").Call(),
	}
	body = append(body, g.tokens(prog.Tokens)...)
	body = append(body,
		g.insert(0, "capture0Start"),
		jen.Return(jen.True()),
	)
	f.Func().Id(stepName).Params(
		jen.Id("chars").Op("*").Qual(g.rt, "Advancer"),
		jen.Id("captures").Op("*").Qual(g.rt, "VectorMap"),
	).Bool().Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering matcher %s: %w", identifier, err)
	}
	return buf.String(), nil
}

// generator carries emission state; rt is the runtime import path.
type generator struct {
	rt string
}

func (g *generator) tokens(toks []ehir.Token) []jen.Code {
	var out []jen.Code
	for _, t := range toks {
		switch t.Op {
		case ehir.OpEmpty:
			// Matches nothing and cannot fail.
		case ehir.OpAdvance:
			out = append(out, jen.Id("character").Op("=").Id("chars").Dot("Advance").Call())
		case ehir.OpStartCount:
			out = append(out, jen.Id("matchCount").Op(":=").Lit(0))
		case ehir.OpIncrementCount:
			out = append(out, jen.Id("matchCount").Op("++"))
		case ehir.OpIf:
			out = append(out, jen.If(g.failCondition(t)).Block(g.noMatch(t.NoMatch)))
		case ehir.OpWhile:
			out = append(out, jen.For(g.decision(t.Decision)).Block(g.tokens(t.Body)...))
		case ehir.OpBlock:
			out = append(out, jen.Block(g.tokens(t.Body)...))
		case ehir.OpCapture:
			start := fmt.Sprintf("capture%dStart", t.Index)
			stmts := []jen.Code{jen.Id(start).Op(":=").Id("character").Dot("Index").Call()}
			stmts = append(stmts, g.tokens(t.Body)...)
			stmts = append(stmts, g.insert(t.Index, start))
			out = append(out, jen.Block(stmts...))
		}
	}
	return out
}

// failCondition renders the test that triggers a token's no-match action:
// the decision itself under ModIs, its negation under ModNot. Literal and
// bounds tests get direct negated forms so the emitted code reads naturally.
func (g *generator) failCondition(t ehir.Token) *jen.Statement {
	d := t.Decision
	if t.Mod == ehir.ModIs {
		return g.decision(d)
	}
	switch d.Op {
	case ehir.DecisionMiddle:
		return jen.Op("!").Id("character").Dot("HasCurrent").Call()
	case ehir.DecisionLiteral:
		return g.runeExpr().Op("!=").Lit(g.codePoint(d.Rune))
	case ehir.DecisionAnchor:
		if d.AnchorKind == ehir.AnchorRegular {
			if d.AnchorLoc == ehir.LocationEnd {
				return jen.Id("character").Dot("HasCurrent").Call()
			}
			return jen.Op("!").Id("character").Dot("Previous").Call().Dot("IsStart").Call()
		}
		return jen.Op("!").Parens(g.decision(d))
	case ehir.DecisionWordBoundary:
		return jen.Op("!").Add(g.decision(d))
	default:
		return jen.Op("!").Parens(g.decision(d))
	}
}

func (g *generator) decision(d *ehir.Decision) *jen.Statement {
	switch d.Op {
	case ehir.DecisionMiddle:
		return jen.Id("character").Dot("HasCurrent").Call()
	case ehir.DecisionLiteral:
		return g.runeExpr().Op("==").Lit(g.codePoint(d.Rune))
	case ehir.DecisionCharacterSet:
		return g.rangesExpr(d.Ranges)
	case ehir.DecisionCountEquals:
		return jen.Id("matchCount").Op("==").Lit(d.Count)
	case ehir.DecisionCountLessThan:
		return jen.Id("matchCount").Op("<").Lit(d.Count)
	case ehir.DecisionAnchor:
		return g.anchorExpr(d)
	case ehir.DecisionWordBoundary:
		fn := "WordBoundaryByte"
		if d.Scope == ehir.ScopeCharacter {
			fn = "WordBoundaryRune"
		}
		return jen.Qual(g.rt, fn).Call(jen.Id("character"))
	default:
		panic(fmt.Sprintf("codegen: unknown decision %d", d.Op))
	}
}

func (g *generator) anchorExpr(d *ehir.Decision) *jen.Statement {
	prev := func() *jen.Statement { return jen.Id("character").Dot("Previous").Call() }
	switch {
	case d.AnchorKind == ehir.AnchorRegular && d.AnchorLoc == ehir.LocationStart:
		return prev().Dot("IsStart").Call()
	case d.AnchorKind == ehir.AnchorRegular && d.AnchorLoc == ehir.LocationEnd:
		return jen.Op("!").Id("character").Dot("HasCurrent").Call()
	case d.AnchorKind == ehir.AnchorNewline && d.AnchorLoc == ehir.LocationStart:
		return prev().Dot("IsStart").Call().Op("||").Add(prev().Dot("Rune").Call().Op("==").Lit(int('\n')))
	default:
		return jen.Op("!").Id("character").Dot("HasCurrent").Call().Op("||").Add(g.runeExpr().Op("==").Lit(int('\n')))
	}
}

func (g *generator) rangesExpr(ranges []ehir.Range) *jen.Statement {
	expr := g.rangeExpr(ranges[0])
	for _, r := range ranges[1:] {
		expr = expr.Op("||").Add(g.rangeExpr(r))
	}
	return expr
}

func (g *generator) rangeExpr(r ehir.Range) *jen.Statement {
	if r.Lo == r.Hi {
		return g.runeExpr().Op("==").Lit(g.codePoint(r.Lo))
	}
	return g.runeExpr().Op(">=").Lit(g.codePoint(r.Lo)).
		Op("&&").Add(g.runeExpr().Op("<=").Lit(g.codePoint(r.Hi)))
}

func (g *generator) runeExpr() *jen.Statement {
	return jen.Id("character").Dot("Rune").Call()
}

func (g *generator) codePoint(v uint32) int {
	return int(conv.Uint32ToRune(v))
}

func (g *generator) noMatch(nm ehir.NoMatch) jen.Code {
	if nm == ehir.Break {
		return jen.Break()
	}
	return jen.Return(jen.False())
}

func (g *generator) insert(index int, startVar string) *jen.Statement {
	return jen.Id("captures").Dot("Insert").Call(
		jen.Lit(index),
		jen.Qual(g.rt, "Location").Values(jen.Dict{
			jen.Id("Start"): jen.Id(startVar),
			jen.Id("End"):   jen.Id("character").Dot("Index").Call(),
		}),
	)
}

// namedGroupsExpr renders the name to index map in sorted order so output
// is deterministic.
func (g *generator) namedGroupsExpr(m map[string]int) *jen.Statement {
	if len(m) == 0 {
		return jen.Nil()
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return jen.Map(jen.String()).Int().Values(jen.DictFunc(func(d jen.Dict) {
		for _, n := range names {
			d[jen.Lit(n)] = jen.Lit(m[n])
		}
	}))
}
