// Command xform runs the graph transformation pipeline over a .zmf model
// and writes the transformed result back out as .zmf.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/zerfoo/xform/frontend/zmf"
	"github.com/zerfoo/xform/ir"
	"github.com/zerfoo/xform/passes"
)

// xformConfig is the flag-populated configuration of this command: a plain
// struct, parsed once in main, with no YAML/JSON config-file loader.
type xformConfig struct {
	InputPath  string
	OutputPath string
	Device     string
	Winograd   bool
	Verbose    bool
}

func main() {
	config := parseFlags()

	if config.Verbose {
		log.Printf("xform: loading model from %s", config.InputPath)
	}

	model, err := zmf.LoadModel(config.InputPath)
	if err != nil {
		log.Fatalf("xform: %v", err)
	}

	g, opt, err := zmf.Decode(model)
	if err != nil {
		log.Fatalf("xform: %v", err)
	}

	opt.Device = parseDevice(config.Device)
	opt.WinogradEnabled = config.Winograd
	opt.Verbose = config.Verbose
	opt.DataType = ir.Float32

	if _, err := passes.Run(g, opt); err != nil {
		log.Fatalf("xform: transform pipeline failed: %v", err)
	}

	out, err := zmf.Encode(g, opt)
	if err != nil {
		log.Fatalf("xform: %v", err)
	}

	if err := zmf.SaveModel(out, config.OutputPath); err != nil {
		log.Fatalf("xform: %v", err)
	}

	log.Printf("xform: wrote transformed model to %s", config.OutputPath)
}

func parseFlags() *xformConfig {
	config := &xformConfig{}

	flag.StringVar(&config.InputPath, "input", "", "Path to the source .zmf model (required)")
	flag.StringVar(&config.OutputPath, "output", "", "Path to write the transformed .zmf model (required)")
	flag.StringVar(&config.Device, "device", "cpu", "Compilation target: cpu or gpu")
	flag.BoolVar(&config.Winograd, "winograd", false, "Enable Winograd convolution transforms (GPU only)")
	flag.BoolVar(&config.Verbose, "verbose", false, "Log per-pass progress")

	flag.Parse()

	if config.InputPath == "" {
		log.Fatal("xform: -input is required")
	}
	if config.OutputPath == "" {
		log.Fatal("xform: -output is required")
	}

	return config
}

func parseDevice(s string) ir.Device {
	if strings.EqualFold(s, "gpu") {
		return ir.GPU
	}
	return ir.CPU
}
