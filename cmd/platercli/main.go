// Command platercli is a thin demonstration binary around the Plater
// core. It is not part of the core (spec §1): CLI parsing, configuration
// file parsing, and mesh I/O are external collaborators the core never
// implements. It exists to show how a real binary wires a MeshLoader,
// a request body, and the core's defaults together.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	plater "github.com/tlsomers/Plater"
)

var (
	requestFlag   = flag.String("request", "", "path to a request file (filename [quantity [orientation]] per line); defaults to stdin")
	plateWidthMM  = flag.Float64("plate-width", plater.DefaultPlateSizeMM, "plate width in mm (rectangle mode)")
	plateHeightMM = flag.Float64("plate-height", plater.DefaultPlateSizeMM, "plate height in mm (rectangle mode)")
	precision     = flag.Float64("precision", plater.DefaultPrecision, "microns per pixel")
	spacing       = flag.Float64("spacing", plater.DefaultSpacing, "minimum clearance between parts, in microns")
	nbThreads     = flag.Int("threads", plater.DefaultNbThreads, "worker pool size for the search engine")
	iterations    = flag.Int("iterations", plater.DefaultRandomIterations, "SHUFFLE+n random sort iterations")
	singleSort    = flag.Bool("single-sort", false, "restrict the search to the SURFACE_DEC sort mode only")
	manifestFlag  = flag.String("manifest", "", "path to write the placement manifest CSV; empty disables it")
)

// noopLoader stands in for a real mesh-loading collaborator (STL/3MF/OBJ
// parsing is out of scope for this core, spec §1). A real deployment
// plugs in a plater.MeshLoader here.
type noopLoader struct{}

func (noopLoader) Load(path string) (plater.Model, error) {
	return nil, errors.New("platercli: no mesh loader wired in; implement plater.MeshLoader for your format")
}

func main() {
	flag.Parse()

	req := plater.NewRequest(noopLoader{})
	req.SetPlateSize(*plateWidthMM, *plateHeightMM)
	req.Precision = *precision
	req.Spacing = *spacing
	req.NbThreads = *nbThreads
	req.RandomIterations = *iterations
	req.SingleSort = *singleSort

	body := os.Stdin
	if *requestFlag != "" {
		f, err := os.Open(*requestFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "! can't open request file:", err)
			os.Exit(1)
		}
		defer f.Close()
		body = f
	}

	if err := req.ReadParts(body); err != nil {
		fmt.Fprintln(os.Stderr, "! can't process:", err)
		os.Exit(1)
	}

	solution, err := req.Process()
	if err != nil {
		fmt.Fprintln(os.Stderr, "! no solution:", err)
		os.Exit(1)
	}

	fmt.Printf("- Plates: %d\n- Score: %g\n", solution.PlateCount(), solution.Score())

	if *manifestFlag != "" {
		out, err := os.Create(*manifestFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "! can't write manifest:", err)
			os.Exit(1)
		}
		defer out.Close()
		if err := plater.WriteManifest(out, solution); err != nil {
			fmt.Fprintln(os.Stderr, "! can't write manifest:", err)
			os.Exit(1)
		}
	}
}
