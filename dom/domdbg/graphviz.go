package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"
	"text/template"

	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/styledtree"
	"github.com/npillmayer/cascade/tree"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a styled tree. The diagram is in
// GraphViz (DOT) format. Every element is drawn with its resolved
// attribute values.
func ToGraphViz(root *tree.Node[*styledtree.StyNode], w io.Writer) error {
	tmpl, err := template.New("styled").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("element").Parse(elementTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*styledtree.StyNode]string, 256)
	if err = elements(root, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given the root of a styled tree and a
// testing.T, it will create a Graphiviz image of the tree and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(root *tree.Node[*styledtree.StyNode], t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "styled.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing styled tree digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(root, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type element struct {
	Name  string
	Label string
	Attrs []style.KeyValue
}

type edge struct {
	From, To string
}

func elements(n *tree.Node[*styledtree.StyNode], w io.Writer, dict map[*styledtree.StyNode]string,
	gparams *graphParamsType) error {
	//
	sn := styledtree.Node(n)
	name := nameOf(sn, dict)
	el := element{
		Name:  name,
		Label: sn.String(),
		Attrs: style.SortedKeyValues(sn.Attributes().ResolvedAttributes()),
	}
	if err := gparams.NodeTmpl.Execute(w, el); err != nil {
		return err
	}
	for _, ch := range n.Children() {
		if err := elements(ch, w, dict, gparams); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, edge{name, nameOf(styledtree.Node(ch), dict)}); err != nil {
			return err
		}
	}
	return nil
}

func nameOf(sn *styledtree.StyNode, dict map[*styledtree.StyNode]string) string {
	name := dict[sn]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[sn] = name
	}
	return name
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const elementTmpl = `{{ .Name }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Label | html }}</font></td></tr>
      {{ range .Attrs }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value | html }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no attributes</td></tr>
      {{ end }}
    </table>> ] ;
`

const edgeTmpl = `{{ .From }} -> {{ .To }} [weight=1] ;
`
