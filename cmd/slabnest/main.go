// SlabNest is a slab cutting optimizer for stone benchtop fabrication.
//
// Nests quoted benchtop pieces and their lamination strips onto stone slabs,
// splits oversize pieces into joinable segments, and exports cut lists,
// layout PDFs, Excel workbooks, DXF drawings and QR part labels.
//
// Build:
//   go build -o slabnest ./cmd/slabnest
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/engine"
	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/export"
	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/importer"
	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/project"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "optimize":
		err = runOptimize(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "compare":
		err = runCompare(os.Args[2:])
	case "estimate":
		err = runEstimate(os.Args[2:])
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `SlabNest - slab cutting optimizer

Usage:
  slabnest optimize -job <file> [flags]   nest a job and export results
  slabnest import -in <file> -out <file>  import pieces from CSV/Excel into a job
  slabnest compare -job <file>            compare nesting scenarios
  slabnest estimate -job <file> [flags]   estimate slab count and cost
  slabnest help                           show this help

Run a command with -h for its flags.
`)
}

// jobFlags are the flags shared by every command that loads a job.
type jobFlags struct {
	jobPath  string
	strategy string
	material string
	length   float64
	width    float64
	kerf     float64
	trim     float64
}

func registerJobFlags(fs *flag.FlagSet) *jobFlags {
	jf := &jobFlags{}
	fs.StringVar(&jf.jobPath, "job", "", "job file (JSON)")
	fs.StringVar(&jf.strategy, "strategy", "", "nesting strategy: guillotine or genetic (overrides job)")
	fs.StringVar(&jf.material, "material", "", "material id from the catalog (sets slab dimensions)")
	fs.Float64Var(&jf.length, "slab-length", 0, "slab length in mm (overrides job)")
	fs.Float64Var(&jf.width, "slab-width", 0, "slab width in mm (overrides job)")
	fs.Float64Var(&jf.kerf, "kerf", -1, "kerf in mm (overrides job)")
	fs.Float64Var(&jf.trim, "trim", -1, "edge trim margin in mm (overrides job)")
	return jf
}

// loadJob reads the job file and applies any flag overrides.
func (jf *jobFlags) loadJob() (*project.Job, error) {
	if jf.jobPath == "" {
		return nil, fmt.Errorf("missing required -job flag")
	}
	job, err := project.LoadJob(jf.jobPath)
	if err != nil {
		return nil, err
	}

	if jf.material != "" {
		path, err := project.DefaultMaterialsPath()
		if err != nil {
			return nil, err
		}
		catalog, err := project.LoadMaterials(path)
		if err != nil {
			return nil, err
		}
		slab, err := catalog.SlabFor(jf.material, job.Settings.Slab.KerfMm, job.Settings.Slab.TrimMarginMm)
		if err != nil {
			return nil, err
		}
		job.Settings.Slab = slab
	}

	if jf.strategy != "" {
		job.Settings.Strategy = jf.strategy
	}
	if jf.length > 0 {
		job.Settings.Slab.LengthMm = jf.length
	}
	if jf.width > 0 {
		job.Settings.Slab.WidthMm = jf.width
	}
	if jf.kerf >= 0 {
		job.Settings.Slab.KerfMm = jf.kerf
	}
	if jf.trim >= 0 {
		job.Settings.Slab.TrimMarginMm = jf.trim
	}
	return job, nil
}

func runOptimize(args []string) error {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	jf := registerJobFlags(fs)
	csvOut := fs.String("csv", "", "write the cut list to this CSV file")
	pdfOut := fs.String("pdf", "", "write layout pages to this PDF file")
	xlsxOut := fs.String("xlsx", "", "write the workbook to this Excel file")
	dxfOut := fs.String("dxf", "", "write slab layouts to this DXF file")
	labelsOut := fs.String("labels", "", "write QR part labels to this PDF file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	job, err := jf.loadJob()
	if err != nil {
		return err
	}

	result, err := engine.Optimize(job.Pieces, job.Settings)
	if err != nil {
		return err
	}

	printSummary(job, result)

	if *csvOut != "" {
		if err := export.ExportCutList(*csvOut, result); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		fmt.Println("wrote", *csvOut)
	}
	if *pdfOut != "" {
		if err := export.ExportPDF(*pdfOut, result, job.Settings); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		fmt.Println("wrote", *pdfOut)
	}
	if *xlsxOut != "" {
		if err := export.ExportExcel(*xlsxOut, result, job.Settings); err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
		fmt.Println("wrote", *xlsxOut)
	}
	if *dxfOut != "" {
		if err := export.ExportDXF(*dxfOut, result, job.Settings); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		fmt.Println("wrote", *dxfOut)
	}
	if *labelsOut != "" {
		if err := export.ExportLabels(*labelsOut, result); err != nil {
			return fmt.Errorf("label export: %w", err)
		}
		fmt.Println("wrote", *labelsOut)
	}
	return nil
}

func printSummary(job *project.Job, result *model.OptimizationResult) {
	fmt.Printf("%s: %d pieces on %d slab(s), waste %.1f%%\n",
		job.Name, result.TotalPieces, result.TotalSlabs, result.WastePercent)
	if result.Lamination.TotalStrips > 0 {
		fmt.Printf("lamination: %d strips, %.0f mm2\n",
			result.Lamination.TotalStrips, result.Lamination.TotalStripArea)
	}
	for _, slab := range result.Slabs {
		fmt.Printf("  slab %d: %d cuts, waste %.1f%%\n",
			slab.Index+1, len(slab.Placements), slab.WastePercent)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "input CSV or Excel file")
	out := fs.String("out", "", "output job file (JSON)")
	name := fs.String("name", "", "job name (defaults to the input file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("missing required -in or -out flag")
	}

	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(*in)) {
	case ".xlsx", ".xls":
		res = importer.ImportExcel(*in)
	default:
		res = importer.ImportCSV(*in)
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	for _, e := range res.Errors {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
	if len(res.Pieces) == 0 {
		return fmt.Errorf("no pieces imported from %s", *in)
	}

	jobName := *name
	if jobName == "" {
		jobName = strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
	}
	job := project.NewJob(jobName)
	job.Pieces = res.Pieces

	if err := project.SaveJob(*out, job); err != nil {
		return err
	}
	fmt.Printf("imported %d piece(s) into %s\n", len(res.Pieces), *out)
	return nil
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	jf := registerJobFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	job, err := jf.loadJob()
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(job.Settings)
	results := engine.CompareScenarios(scenarios, job.Pieces)

	fmt.Printf("%-24s %8s %8s %8s\n", "Scenario", "Slabs", "Cuts", "Waste")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-24s failed: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Printf("%-24s %8d %8d %7.1f%%\n", r.Scenario.Name, r.SlabsUsed, r.TotalCuts, r.WastePercent)
	}
	return nil
}

func runEstimate(args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	jf := registerJobFlags(fs)
	waste := fs.Float64("waste", 10, "waste allowance percent")
	price := fs.Float64("price", 0, "price per slab (taken from the material when 0)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	job, err := jf.loadJob()
	if err != nil {
		return err
	}

	pricePerSlab := *price
	if pricePerSlab == 0 && jf.material != "" {
		path, err := project.DefaultMaterialsPath()
		if err != nil {
			return err
		}
		catalog, err := project.LoadMaterials(path)
		if err != nil {
			return err
		}
		if m, ok := catalog.Find(jf.material); ok {
			pricePerSlab = m.PricePerSlab
		}
	}

	units, err := engine.PrepareUnits(job.Pieces, job.Settings)
	if err != nil {
		return err
	}

	est := model.EstimateSlabs(units, job.Settings.Slab, *waste, pricePerSlab)
	fmt.Printf("%s: area %.2f m2, minimum %d slab(s), %d recommended at %.0f%% waste allowance\n",
		job.Name, est.TotalSquareM, est.SlabsMin, est.SlabsWithWaste, *waste)
	if pricePerSlab > 0 {
		fmt.Printf("material cost: %.2f\n", est.EstimatedCost)
	}
	return nil
}
