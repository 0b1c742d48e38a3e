// Package diagram renders a built pipeline's step chain as a Graphviz
// document, optionally annotated and heat-coloured with timings collected by
// a pipeline.Measure.
package diagram

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/plugrig/plugrig/pkg/pipeline"
)

const (
	startVertex = "input"
	endVertex   = "output"
)

// Diagram holds the directed chain graph of one pipeline.
type Diagram struct {
	graph graph.Graph[string, string]
	steps []string
}

// New builds the chain graph for a pipeline: an input vertex, one vertex per
// step in order, and an output vertex.
func New(p *pipeline.Pipeline) (*Diagram, error) {
	d := &Diagram{
		graph: graph.New(graph.StringHash, graph.Directed()),
		steps: p.Steps(),
	}

	previous := startVertex
	if err := d.graph.AddVertex(startVertex); err != nil {
		return nil, errors.Wrap(err, "unable to add input vertex")
	}
	for i, step := range d.steps {
		// Step names may repeat inside one pipeline; the position keeps
		// vertices unique.
		vertex := vertexName(i, step)
		if err := d.graph.AddVertex(vertex); err != nil {
			return nil, errors.Wrapf(err, "unable to add vertex for step %d (%q)", i, step)
		}
		if err := d.graph.AddEdge(previous, vertex); err != nil {
			return nil, errors.Wrapf(err, "unable to add edge from %s to %s", previous, vertex)
		}
		previous = vertex
	}
	if err := d.graph.AddVertex(endVertex); err != nil {
		return nil, errors.Wrap(err, "unable to add output vertex")
	}
	if err := d.graph.AddEdge(previous, endVertex); err != nil {
		return nil, errors.Wrap(err, "unable to add output edge")
	}

	return d, nil
}

func vertexName(index int, step string) string {
	return fmt.Sprintf("%d. %s", index+1, step)
}

const maxRGB = 240

// AddMeasure annotates each step vertex with its average duration and
// colours it on a blue-to-red scale relative to the other steps.
func (d *Diagram) AddMeasure(msr *pipeline.Measure) error {
	metrics := msr.Steps()

	var avgs []time.Duration
	for _, mt := range metrics {
		if mt.Avg() != 0 {
			avgs = append(avgs, mt.Avg())
		}
	}
	if len(avgs) == 0 {
		return nil
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i] < avgs[j] })
	minAvg, maxAvg := avgs[0], avgs[len(avgs)-1]

	for i, step := range d.steps {
		mt, ok := metrics[step]
		if !ok || mt.Avg() == 0 {
			continue
		}

		hex, err := heatColor(mt.Avg(), minAvg, maxAvg)
		if err != nil {
			return err
		}

		_, properties, err := d.graph.VertexWithProperties(vertexName(i, step))
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}
		properties.Attributes["xlabel"] = mt.Avg().String()
		properties.Attributes["color"] = hex
	}

	return nil
}

func heatColor(avg, minAvg, maxAvg time.Duration) (string, error) {
	fraction := 1.0
	if maxAvg > minAvg {
		fraction = float64(avg-minAvg) / float64(maxAvg-minAvg)
	}

	red := uint8(maxRGB * fraction)
	blue := uint8(maxRGB - maxRGB*fraction)

	c, err := colors.RGB(red, 0, blue) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return c.ToHEX().String(), nil
}

// Render writes the DOT document to a file.
func (d *Diagram) Render(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", fileName)
	}
	defer file.Close()

	return d.DOT(file)
}
