package diagram

import (
	"fmt"
	"io"
	"text/template"

	"github.com/pkg/errors"
)

const dotTemplate = `strict digraph {
{{- range $k, $v := .Attributes}}
	{{$k}}="{{$v}}";
{{- end}}
{{- range .Nodes}}
	"{{.Name}}" [ {{if .Label}}label={{.Label}}, {{end}}{{range $k, $v := .Attributes}}{{$k}}="{{$v}}", {{end}}];
{{- end}}
{{- range .Edges}}
	"{{.From}}" -> "{{.To}}";
{{- end}}
}
`

type document struct {
	Attributes map[string]string
	Nodes      []node
	Edges      []edge
}

type node struct {
	Name       string
	Label      string
	Attributes map[string]string
}

type edge struct {
	From string
	To   string
}

// GraphAttribute is a functional option for the [Diagram.DOT] method.
func GraphAttribute(key, value string) func(*document) {
	return func(d *document) {
		d.Attributes[key] = value
	}
}

// DOT writes the diagram as a Graphviz DOT document, with vertices and edges
// emitted in chain order.
func (d *Diagram) DOT(wrt io.Writer, options ...func(*document)) error {
	doc, err := d.document(options...)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}
	if err := tpl.Execute(wrt, doc); err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

// document flattens the chain into the template's shape. A timing annotation
// stored as xlabel becomes an HTML label under the vertex name.
func (d *Diagram) document(options ...func(*document)) (document, error) {
	doc := document{Attributes: make(map[string]string)}
	for _, option := range options {
		option(&doc)
	}

	names := make([]string, 0, len(d.steps)+2)
	names = append(names, startVertex)
	for i, step := range d.steps {
		names = append(names, vertexName(i, step))
	}
	names = append(names, endVertex)

	for _, name := range names {
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return doc, errors.Wrapf(err, "unable to get vertex properties for %s", name)
		}

		n := node{Name: name, Attributes: make(map[string]string)}
		for k, v := range properties.Attributes {
			if k == "xlabel" {
				n.Label = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, name, v)
				continue
			}
			n.Attributes[k] = v
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	for i := 0; i < len(names)-1; i++ {
		doc.Edges = append(doc.Edges, edge{From: names[i], To: names[i+1]})
	}

	return doc, nil
}
