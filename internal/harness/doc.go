// Package harness runs evaluation scenarios against variable quantities.
//
// A scenario is a YAML file naming one quantity and a list of cases. The
// quantity is either written inline, in the same tagged form model files
// use, or referenced from a CUE model directory:
//
//	name: winding_hot
//	description: "winding resistance follows the copper coefficient"
//	unit: Ohm
//	quantity:
//	  FirstOrderTaylor:
//	    base_value: 0.5 Ohm
//	    slope: 0.004 /K
//	    expansion_point: 293.15 K
//	cases:
//	  - name: reference point
//	    inputs: ["293.15 K"]
//	    expect: 0.5 Ohm
//	  - name: hot
//	    inputs: ["393.15 K", "12 V"]
//	    expect: 0.7 Ohm
//	    tolerance: 1e-6
//
// Each case evaluates the quantity on its inputs and compares the result's
// dimension exactly and its value within tolerance. A function that breaks
// its dimension contract fails the case instead of aborting the run.
//
// RunWithGolden additionally snapshots the evaluated cases into
// testdata/golden/<name>.golden through goldie.
package harness
