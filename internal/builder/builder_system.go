package builder

import (
	"strconv"

	"github.com/cwbudde/go-qit/internal/qast"
)

// declareSystemIterator emits the two-queue breadth-first state-space
// iterator for an ActionSystem.States(depth) root (spec.md §4.7, grounded
// on original_source/src/qit/build/builder.py's declare_system_iterator):
// queue1 holds the current BFS layer, queue2 accumulates the next one,
// discovered deduplicates every state ever seen, and each rule's functor
// is applied once per state per layer — a one-to-one rule contributes at
// most one successor, a one-to-many rule contributes its whole result
// vector (the "fan-out" spec.md §9 calls out).
func (b *Builder) declareSystemIterator(it *qast.SystemIter) (string, error) {
	name := b.autoname(it, "SystemIterator")
	if b.checkDeclared(it) {
		return name, nil
	}

	if err := b.declareType(it.System.StateType); err != nil {
		return "", err
	}
	initType, err := b.iteratorType(it.System.InitialStates)
	if err != nil {
		return "", err
	}
	stateType := b.elementType(it.System.StateType)

	ruleFunctorTypes := make([]string, len(it.System.Rules))
	for i, r := range it.System.Rules {
		ft, err := b.functorType(r.Fn)
		if err != nil {
			return "", err
		}
		ruleFunctorTypes[i] = ft
	}

	b.w.Emptyline()
	b.w.Line("// %s: breadth-first state-space iterator", name)
	b.w.ClassBegin(name)
	b.w.Line("%s init;", initType)
	b.w.Line("std::vector<%s> queue1;", stateType)
	b.w.Line("std::vector<%s> queue2;", stateType)
	b.w.Line("std::set<%s> discovered;", stateType)
	b.w.Line("size_t pos;")
	b.w.Line("int depth;")
	b.w.Line("int curDepth;")
	for i, ft := range ruleFunctorTypes {
		b.w.Line("%s rule%d;", ft, i)
	}
	b.w.Emptyline()
	b.w.Line("typedef %s value_type;", stateType)

	ctorArgs := []string{initType + " init_", "int depth_"}
	inits := []string{"init(init_)", "pos(0)", "depth(depth_)", "curDepth(0)"}
	for i, ft := range ruleFunctorTypes {
		is := strconv.Itoa(i)
		ctorArgs = append(ctorArgs, ft+" rule"+is+"_")
		inits = append(inits, "rule"+is+"(rule"+is+"_)")
	}
	b.w.Line("%s(%s) : %s", name, joinArgs(ctorArgs), joinArgs(inits))
	b.w.BlockBegin()
	b.w.Line("%s v;", stateType)
	b.w.Line("while (init.next(v))")
	b.w.BlockBegin()
	b.w.Line("if (discovered.insert(v).second) queue1.push_back(v);")
	b.w.BlockEnd()
	b.w.BlockEnd()

	b.w.Emptyline()
	b.w.Line("bool next(value_type &out)")
	b.w.BlockBegin()
	b.w.Line("for (;;)")
	b.w.BlockBegin()
	b.w.Line("if (pos < queue1.size()) { out = queue1[pos++]; return true; }")
	b.w.Line("if (curDepth >= depth || queue1.empty()) return false;")
	b.w.Line("for (size_t qi = 0; qi < queue1.size(); qi++)")
	b.w.BlockBegin()
	b.w.Line("const value_type &s = queue1[qi];")
	for i, r := range it.System.Rules {
		b.w.Emptyline()
		switch r.Kind {
		case qast.OneToOne:
			b.w.Line("value_type r%d = rule%d(s);", i, i)
			b.w.Line("if (discovered.insert(r%d).second) queue2.push_back(r%d);", i, i)
		case qast.OneToMany:
			b.w.Line("std::vector<value_type> rs%d = rule%d(s);", i, i)
			b.w.Line("for (size_t ri = 0; ri < rs%d.size(); ri++)", i)
			b.w.BlockBegin()
			b.w.Line("if (discovered.insert(rs%d[ri]).second) queue2.push_back(rs%d[ri]);", i, i)
			b.w.BlockEnd()
		}
	}
	b.w.BlockEnd()
	b.w.Line("queue1.swap(queue2);")
	b.w.Line("queue2.clear();")
	b.w.Line("pos = 0;")
	b.w.Line("curDepth++;")
	b.w.BlockEnd()
	b.w.BlockEnd()

	b.w.Emptyline()
	b.w.Line("void reset()")
	b.w.BlockBegin()
	b.w.Line("queue1.clear(); queue2.clear(); discovered.clear();")
	b.w.Line("pos = 0; curDepth = 0;")
	b.w.Line("init.reset();")
	b.w.Line("%s v;", stateType)
	b.w.Line("while (init.next(v)) if (discovered.insert(v).second) queue1.push_back(v);")
	b.w.BlockEnd()
	b.w.ClassEnd()
	return name, nil
}

// makeSystemIterator emits the statement constructing a SystemIter's
// native instance: the initial-states iterator, the depth bound, and one
// bound functor per rule.
func (b *Builder) makeSystemIterator(it *qast.SystemIter, cppType string) (string, error) {
	initVar, err := b.makeIterator(it.System.InitialStates)
	if err != nil {
		return "", err
	}
	depthCode, err := b.exprCode(it.Depth)
	if err != nil {
		return "", err
	}
	args := []string{initVar, depthCode}
	for _, r := range it.System.Rules {
		fv, err := b.makeFunctor(r.Fn)
		if err != nil {
			return "", err
		}
		args = append(args, fv)
	}
	return b.makeInstance(cppType, "sys", args), nil
}
