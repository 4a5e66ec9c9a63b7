package loader

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// sourcePos is the position of a declaration within the YAML text.
type sourcePos struct {
	decl         *DeclarationSpec
	line, column int
}

type positions []sourcePos

// numberInSourceOrder walks the YAML node tree alongside the decoded rule
// tree and gives every declaration without an explicit order its rank in
// the YAML text.
func numberInSourceOrder(spec *DocumentSpec, doc *yaml.Node) {
	var ps positions
	ps.node(spec.Declarations, spec.Rules, doc)
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].line != ps[j].line {
			return ps[i].line < ps[j].line
		}
		return ps[i].column < ps[j].column
	})
	for i, p := range ps {
		if p.decl.Order == 0 {
			p.decl.Order = i + 1
		}
	}
}

func (ps *positions) node(decls []DeclarationSpec, rules *RuleIndexSpec, n *yaml.Node) {
	m := ofKind(n, yaml.MappingNode)
	if m == nil {
		return
	}
	if seq := ofKind(field(m, "declarations"), yaml.SequenceNode); seq != nil {
		for i, item := range seq.Content {
			if i < len(decls) {
				*ps = append(*ps, sourcePos{decl: &decls[i], line: item.Line, column: item.Column})
			}
		}
	}
	if rules != nil {
		ps.index(rules, field(m, "rules"))
	}
}

func (ps *positions) index(spec *RuleIndexSpec, n *yaml.Node) {
	m := ofKind(n, yaml.MappingNode)
	if m == nil {
		return
	}
	ps.bucket(spec.ID, field(m, "id"))
	ps.bucket(spec.Class, field(m, "class"))
	ps.bucket(spec.Tag, field(m, "tag"))
	if seq := ofKind(field(m, "attribute"), yaml.SequenceNode); seq != nil {
		for i, item := range seq.Content {
			if i < len(spec.Attribute) {
				ps.node(spec.Attribute[i].Declarations, spec.Attribute[i].Rules, item)
			}
		}
	}
	if spec.FirstChild != nil {
		ps.node(spec.FirstChild.Declarations, spec.FirstChild.Rules, field(m, "first_child"))
	}
	if spec.LastChild != nil {
		ps.node(spec.LastChild.Declarations, spec.LastChild.Rules, field(m, "last_child"))
	}
	if seq := ofKind(field(m, "nth_child"), yaml.SequenceNode); seq != nil {
		for i, item := range seq.Content {
			if i < len(spec.NthChild) {
				ps.node(spec.NthChild[i].Declarations, spec.NthChild[i].Rules, item)
			}
		}
	}
	if spec.Parent != nil {
		ps.index(spec.Parent, field(m, "parent"))
	}
	if spec.Ancestor != nil {
		ps.index(spec.Ancestor, field(m, "ancestor"))
	}
}

func (ps *positions) bucket(specs map[string]*StyleNodeSpec, n *yaml.Node) {
	m := ofKind(n, yaml.MappingNode)
	if m == nil {
		return
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if s := specs[m.Content[i].Value]; s != nil {
			ps.node(s.Declarations, s.Rules, m.Content[i+1])
		}
	}
}

// ofKind unwraps documents and aliases and returns n if it is of kind k.
func ofKind(n *yaml.Node, k yaml.Kind) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == k:
			return n
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode:
			n = n.Alias
		default:
			return nil
		}
	}
	return nil
}

// field returns the value node for key in mapping m.
func field(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
