// Command dcopf reads a network definition in JSON, solves the optimal
// dispatch, and prints the priced result as JSON on stdout.
//
// Usage:
//
//	dcopf [-f network.json] [-hard-limits] [-voll 5000] [-verbose]
//
// With -f absent or "-" the definition is read from stdin. A solvable
// scarcity (feasible=false under -hard-limits) exits 0 with the diagnosis
// in the output; malformed input and solver failures exit 1.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/voltmesh/dcopf/dispatch"
	"github.com/voltmesh/dcopf/grid"
)

type nodeOut struct {
	Node         string             `json:"node"`
	GenerationMW float64            `json:"generation_mw"`
	SheddingMW   float64            `json:"shedding_mw,omitempty"`
	LMP          float64            `json:"lmp"`
	Congestion   float64            `json:"congestion,omitempty"`
	Lines        map[string]float64 `json:"congestion_lines,omitempty"`
}

type lineOut struct {
	Line       string             `json:"line"`
	FlowMW     float64            `json:"flow_mw"`
	CapacityMW float64            `json:"capacity_mw"`
	LengthKM   float64            `json:"length_km"`
	Injectors  map[string]float64 `json:"injectors,omitempty"`
}

type infeasOut struct {
	Causes      []string `json:"causes"`
	Details     []string `json:"details"`
	Suggestions []string `json:"suggestions"`
}

type output struct {
	Feasible      bool       `json:"feasible"`
	EnergyPrice   float64    `json:"energy_price"`
	TotalCost     float64    `json:"total_cost"`
	Nodes         []nodeOut  `json:"nodes"`
	Lines         []lineOut  `json:"lines"`
	Infeasibility *infeasOut `json:"infeasibility,omitempty"`
}

func main() {
	var (
		input      = flag.String("f", "-", "network definition file (\"-\" for stdin)")
		hardLimits = flag.Bool("hard-limits", false, "forbid load shedding; scarcity becomes infeasible")
		voll       = flag.Float64("voll", dispatch.DefaultVOLL, "value of lost load, €/MWh")
		verbose    = flag.Bool("verbose", false, "print solver progress to stdout")
	)
	flag.Parse()

	if err := run(*input, *hardLimits, *voll, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "dcopf:", err)
		os.Exit(1)
	}
}

func run(input string, hardLimits bool, voll float64, verbose bool) error {
	def, err := readDefinition(input)
	if err != nil {
		return err
	}

	net, err := grid.New(def)
	if err != nil {
		return err
	}

	opts := []dispatch.Option{dispatch.WithVOLL(voll)}
	if hardLimits {
		opts = append(opts, dispatch.WithHardLimits())
	}
	if verbose {
		opts = append(opts, dispatch.WithVerbose())
	}

	res, err := dispatch.Solve(net, opts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(render(net, res))
}

func readDefinition(input string) (grid.Definition, error) {
	var def grid.Definition

	r := io.Reader(os.Stdin)
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return def, err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return def, fmt.Errorf("parse definition: %w", err)
	}

	return def, nil
}

// render maps the index-addressed result onto node IDs and line labels.
// Labels exist only at this boundary; the library stays index-based.
func render(net *grid.Network, res *dispatch.Result) *output {
	out := &output{
		Feasible:    res.Feasible,
		EnergyPrice: res.EnergyPrice,
		TotalCost:   res.TotalCost,
		Nodes:       make([]nodeOut, net.NodeCount()),
		Lines:       make([]lineOut, net.LineCount()),
	}

	for n := range out.Nodes {
		no := nodeOut{
			Node:         net.Node(n).ID,
			GenerationMW: res.Generation[n],
			SheddingMW:   res.Shedding[n],
			LMP:          res.LMP[n],
			Congestion:   res.Details[n].Congestion,
		}
		if len(res.Details[n].Lines) > 0 {
			no.Lines = make(map[string]float64, len(res.Details[n].Lines))
			for _, lc := range res.Details[n].Lines {
				no.Lines[net.LineID(lc.Line)] = lc.Price
			}
		}
		out.Nodes[n] = no
	}

	for l := range out.Lines {
		lo := lineOut{
			Line:       net.LineID(l),
			FlowMW:     res.Flows[l],
			CapacityMW: res.Capacities[l],
			LengthKM:   res.Lengths[l],
		}
		if len(res.InjectorFlows) > l && len(res.InjectorFlows[l]) > 0 {
			lo.Injectors = make(map[string]float64, len(res.InjectorFlows[l]))
			for n, v := range res.InjectorFlows[l] {
				lo.Injectors[net.Node(n).ID] = v
			}
		}
		out.Lines[l] = lo
	}

	if res.Infeasibility != nil {
		out.Infeasibility = &infeasOut{
			Causes:      res.Infeasibility.Causes,
			Details:     res.Infeasibility.Details,
			Suggestions: res.Infeasibility.Suggestions,
		}
	}

	return out
}
