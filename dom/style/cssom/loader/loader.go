/*
Package loader builds style documents from structured rule trees.

Rule trees arrive already structured, either as YAML (mostly for tests and
hand-written themes) or as binary Ion, the compact form documents are
shipped in. This package does not parse CSS source text.

A YAML rule tree looks like this:

    resource: theme.css
    declarations:            # apply to every element
      - { attribute: color, value: black }
    rules:
      class:
        primary:
          declarations:
            - { attribute: background-color, value: blue, priority: 1 }
          rules:              # ".primary" combined with a tag: "button.primary"
            tag:
              button:
                declarations:
                  - { attribute: border-width, value: 2pt }
      nth_child:
        - n: 2
          offset: 1
          declarations:
            - { attribute: background-color, value: gray }
      parent:                 # "list > *"
        tag:
          list:
            declarations:
              - { attribute: margin-top, value: 4pt }

Declarations read from YAML without an explicit order are numbered by their
position in the YAML text, which makes later declarations win over earlier
ones of equal priority. Rule trees from other sources (Ion, or built in
code) keep the orders they carry; missing ones are numbered in traversal
order: id, class and tag buckets in sorted key order, then attribute,
structural, parent and ancestor rules. Encoding a YAML rule tree to Ion
carries the source orders along.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/amazon-ion/ion-go/ion"
	"github.com/npillmayer/cascade/attr"
	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'cascade.loader'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.loader")
}

// ErrMalformedDocument is returned for rule trees which cannot be turned
// into a document.
var ErrMalformedDocument = errors.New("malformed style document")

// DocumentSpec is the serialized form of a style document.
type DocumentSpec struct {
	Resource     string            `yaml:"resource" ion:"resource"`
	Declarations []DeclarationSpec `yaml:"declarations,omitempty" ion:"declarations,omitempty"`
	Rules        *RuleIndexSpec    `yaml:"rules,omitempty" ion:"rules,omitempty"`
}

// StyleNodeSpec is the serialized form of a style node.
type StyleNodeSpec struct {
	Declarations []DeclarationSpec `yaml:"declarations,omitempty" ion:"declarations,omitempty"`
	Rules        *RuleIndexSpec    `yaml:"rules,omitempty" ion:"rules,omitempty"`
}

// DeclarationSpec is the serialized form of a declaration.
type DeclarationSpec struct {
	Attribute string `yaml:"attribute" ion:"attribute"`
	Value     string `yaml:"value" ion:"value"`
	Priority  int    `yaml:"priority,omitempty" ion:"priority,omitempty"`
	Order     int    `yaml:"order,omitempty" ion:"order,omitempty"`
}

// AttributeRuleSpec selects elements by the value of another attribute.
type AttributeRuleSpec struct {
	Attribute    string            `yaml:"attribute" ion:"attribute"`
	Value        string            `yaml:"value" ion:"value"`
	Declarations []DeclarationSpec `yaml:"declarations,omitempty" ion:"declarations,omitempty"`
	Rules        *RuleIndexSpec    `yaml:"rules,omitempty" ion:"rules,omitempty"`
}

// NthChildSpec selects elements by position among siblings.
type NthChildSpec struct {
	N            int               `yaml:"n" ion:"n"`
	Offset       int               `yaml:"offset" ion:"offset"`
	Declarations []DeclarationSpec `yaml:"declarations,omitempty" ion:"declarations,omitempty"`
	Rules        *RuleIndexSpec    `yaml:"rules,omitempty" ion:"rules,omitempty"`
}

// RuleIndexSpec is the serialized form of a rule index.
type RuleIndexSpec struct {
	ID         map[string]*StyleNodeSpec `yaml:"id,omitempty" ion:"id,omitempty"`
	Class      map[string]*StyleNodeSpec `yaml:"class,omitempty" ion:"class,omitempty"`
	Tag        map[string]*StyleNodeSpec `yaml:"tag,omitempty" ion:"tag,omitempty"`
	Attribute  []AttributeRuleSpec       `yaml:"attribute,omitempty" ion:"attribute,omitempty"`
	FirstChild *StyleNodeSpec            `yaml:"first_child,omitempty" ion:"first_child,omitempty"`
	LastChild  *StyleNodeSpec            `yaml:"last_child,omitempty" ion:"last_child,omitempty"`
	NthChild   []NthChildSpec            `yaml:"nth_child,omitempty" ion:"nth_child,omitempty"`
	Parent     *RuleIndexSpec            `yaml:"parent,omitempty" ion:"parent,omitempty"`
	Ancestor   *RuleIndexSpec            `yaml:"ancestor,omitempty" ion:"ancestor,omitempty"`
}

// DecodeYAML reads a rule tree from YAML. Unknown fields are rejected.
// Declarations without an explicit order are numbered in source order.
func DecodeYAML(r io.Reader) (*DocumentSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	spec := &DocumentSpec{}
	if err := dec.Decode(spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	numberInSourceOrder(spec, &root)
	return spec, nil
}

// DecodeIon reads a rule tree from Ion data (binary or text).
func DecodeIon(data []byte) (*DocumentSpec, error) {
	spec := &DocumentSpec{}
	if err := ion.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return spec, nil
}

// EncodeIon writes a rule tree as binary Ion.
func EncodeIon(spec *DocumentSpec) ([]byte, error) {
	return ion.MarshalBinary(spec)
}

// LoadYAML reads a YAML rule tree and builds a document from it, interning
// attribute names with ids.
func LoadYAML(r io.Reader, ids *attr.IDs) (*cssom.Document, error) {
	spec, err := DecodeYAML(r)
	if err != nil {
		return nil, err
	}
	return Build(spec, ids)
}

// LoadYAMLBytes is LoadYAML for in-memory data.
func LoadYAMLBytes(data []byte, ids *attr.IDs) (*cssom.Document, error) {
	return LoadYAML(bytes.NewReader(data), ids)
}

// LoadIon reads an Ion rule tree and builds a document from it.
func LoadIon(data []byte, ids *attr.IDs) (*cssom.Document, error) {
	spec, err := DecodeIon(data)
	if err != nil {
		return nil, err
	}
	return Build(spec, ids)
}

// Build turns a rule tree into a document.
func Build(spec *DocumentSpec, ids *attr.IDs) (*cssom.Document, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: no document", ErrMalformedDocument)
	}
	b := &builder{ids: ids}
	root, err := b.node(&StyleNodeSpec{Declarations: spec.Declarations, Rules: spec.Rules}, "/")
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded document %s with %d declarations", spec.Resource, b.order)
	return cssom.NewDocument(spec.Resource, root), nil
}

type builder struct {
	ids   *attr.IDs
	order int // running declaration number
}

func (b *builder) node(spec *StyleNodeSpec, path string) (*cssom.StyleNode, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: empty rule at %s", ErrMalformedDocument, path)
	}
	n := &cssom.StyleNode{}
	for i, d := range spec.Declarations {
		if d.Attribute == "" {
			return nil, fmt.Errorf("%w: declaration #%d at %s has no attribute", ErrMalformedDocument, i, path)
		}
		b.order++
		order := d.Order
		if order == 0 {
			order = b.order
		}
		n.Declarations = append(n.Declarations, cssom.Declaration{
			Attribute: b.ids.Intern(d.Attribute),
			Value:     style.Property(d.Value),
			Priority:  d.Priority,
			Order:     order,
		})
	}
	if spec.Rules != nil {
		r, err := b.index(spec.Rules, path)
		if err != nil {
			return nil, err
		}
		n.Rules = r
	}
	return n, nil
}

func (b *builder) bucket(m map[string]*StyleNodeSpec, path, kind string) (map[string]*cssom.StyleNode, error) {
	if len(m) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // numbering of declarations must not depend on map order
	out := make(map[string]*cssom.StyleNode, len(m))
	for _, k := range keys {
		if k == "" {
			return nil, fmt.Errorf("%w: empty %s selector at %s", ErrMalformedDocument, kind, path)
		}
		n, err := b.node(m[k], path+kind+"="+k+"/")
		if err != nil {
			return nil, err
		}
		out[k] = n
	}
	return out, nil
}

func (b *builder) index(spec *RuleIndexSpec, path string) (*cssom.RuleIndex, error) {
	r := &cssom.RuleIndex{}
	var err error
	if r.ByID, err = b.bucket(spec.ID, path, "#"); err != nil {
		return nil, err
	}
	if r.ByClass, err = b.bucket(spec.Class, path, "."); err != nil {
		return nil, err
	}
	if r.ByTag, err = b.bucket(spec.Tag, path, "tag"); err != nil {
		return nil, err
	}
	for i := range spec.Attribute {
		a := &spec.Attribute[i]
		if a.Attribute == "" {
			return nil, fmt.Errorf("%w: attribute rule #%d at %s has no attribute", ErrMalformedDocument, i, path)
		}
		if a.Value == "" { // an empty value stands for "undefined" and never matches
			return nil, fmt.Errorf("%w: attribute rule [%s] at %s has no value", ErrMalformedDocument,
				a.Attribute, path)
		}
		n, err := b.node(&StyleNodeSpec{Declarations: a.Declarations, Rules: a.Rules}, path+"["+a.Attribute+"]/")
		if err != nil {
			return nil, err
		}
		r.AttributeRules = append(r.AttributeRules, cssom.AttributeRule{
			Attribute: b.ids.Intern(a.Attribute),
			Value:     style.Property(a.Value),
			Node:      n,
		})
	}
	if spec.FirstChild != nil {
		if r.FirstChild, err = b.node(spec.FirstChild, path+":first-child/"); err != nil {
			return nil, err
		}
	}
	if spec.LastChild != nil {
		if r.LastChild, err = b.node(spec.LastChild, path+":last-child/"); err != nil {
			return nil, err
		}
	}
	for i := range spec.NthChild {
		nc := &spec.NthChild[i]
		if nc.N == 0 && nc.Offset <= 0 {
			return nil, fmt.Errorf("%w: nth-child(%dn+%d) at %s never matches", ErrMalformedDocument,
				nc.N, nc.Offset, path)
		}
		sel := fmt.Sprintf("%s:nth-child(%dn+%d)/", path, nc.N, nc.Offset)
		n, err := b.node(&StyleNodeSpec{Declarations: nc.Declarations, Rules: nc.Rules}, sel)
		if err != nil {
			return nil, err
		}
		r.NthChild = append(r.NthChild, cssom.NthChildRule{N: nc.N, Offset: nc.Offset, Node: n})
	}
	if spec.Parent != nil {
		if r.DirectParent, err = b.index(spec.Parent, path+">/"); err != nil {
			return nil, err
		}
	}
	if spec.Ancestor != nil {
		if r.Ancestor, err = b.index(spec.Ancestor, path+"~/"); err != nil {
			return nil, err
		}
	}
	return r, nil
}
