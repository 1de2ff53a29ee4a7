package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/aot-runtime/descriptor"
	"github.com/wippyai/aot-runtime/engine"
	"github.com/wippyai/aot-runtime/host"
	"github.com/wippyai/aot-runtime/image"
	"github.com/wippyai/aot-runtime/loader"
)

// multiFlag collects repeatable flag values.
type multiFlag []string

func (f *multiFlag) String() string { return strings.Join(*f, ",") }

func (f *multiFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var (
		manifestPath = flag.String("manifest", "", "Path to image manifest (TOML)")
		moduleName   = flag.String("module", "", "Module to import")
		installDir   = flag.String("install", "", "Native artifact directory (overrides manifest)")
		pathBase     = flag.String("base", "", "Synthetic source path base (overrides manifest)")
		list         = flag.Bool("list", false, "List descriptors and exit")
		verbose      = flag.Bool("verbose", false, "Trace import negotiation")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		wasmMods     multiFlag
		nativeMods   multiFlag
	)
	flag.Var(&wasmMods, "wasm", "Bytecode descriptor as name=file (repeatable)")
	flag.Var(&nativeMods, "native", "Native descriptor name (repeatable)")
	flag.Parse()

	if len(wasmMods) == 0 && len(nativeMods) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: run -wasm name=file.wasm [-wasm ...] [-native name] [-module name]")
		fmt.Fprintln(os.Stderr, "       run -wasm name=file.wasm -list")
		fmt.Fprintln(os.Stderr, "       run -wasm name=file.wasm -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*manifestPath, *moduleName, *installDir, *pathBase, wasmMods, nativeMods, *list, *verbose, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(manifestPath, moduleName, installDir, pathBase string, wasmMods, nativeMods []string, list, verbose, interactive bool) error {
	ctx := context.Background()

	manifest := image.Default()
	if manifestPath != "" {
		var err error
		manifest, err = image.Load(manifestPath)
		if err != nil {
			return err
		}
	}

	cfg := manifest.LoaderConfig()
	if installDir != "" {
		cfg.InstallDir = installDir
	}
	if pathBase != "" {
		cfg.PathBase = pathBase
	}
	if verbose {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()
		loader.SetLogger(log)
		engine.SetLogger(log)
	}

	table, err := buildTable(wasmMods, nativeMods)
	if err != nil {
		return err
	}

	if list {
		fmt.Printf("Descriptors: %d\n", table.Len())
		for _, e := range table.Entries() {
			kind := e.Payload.Kind()
			if e.Package {
				kind += ", package"
			}
			fmt.Printf("  %s (%s)\n", e.Name, kind)
		}
		return nil
	}

	h := host.New()
	eng, err := engine.New(ctx)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close(ctx)

	// Guest imports re-enter the host import machinery.
	eng.SetImporter(func(ctx context.Context, name string) error {
		_, err := h.ImportModule(ctx, name)
		return err
	})

	c := loader.NewContext(table, h, eng, cfg)
	if err := loader.Install(c, host.ProtocolV3); err != nil {
		return fmt.Errorf("install loader: %w", err)
	}

	if interactive {
		return runInteractive(c, h)
	}

	if moduleName == "" {
		fmt.Println("No module specified. Use -module to import one, or -i for interactive mode.")
		return nil
	}

	mod, err := h.ImportModule(ctx, moduleName)
	if err != nil {
		return fmt.Errorf("import %s: %w", moduleName, err)
	}

	fmt.Printf("<module '%s' from '%s'>\n", mod.Name(), mod.File())
	if sp := mod.SearchPath(); sp != nil {
		fmt.Printf("Search path: %v\n", sp)
	}
	return nil
}

// buildTable assembles a descriptor table from command-line records, the
// moral equivalent of the table a translated binary embeds.
func buildTable(wasmMods, nativeMods []string) (*descriptor.Table, error) {
	var records []descriptor.Entry

	for _, spec := range wasmMods {
		name, file, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -wasm value %q, want name=file", spec)
		}
		blob, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		records = append(records, descriptor.Entry{
			Name:    name,
			Payload: descriptor.Bytecode{Blob: blob},
		})
	}

	for _, name := range nativeMods {
		records = append(records, descriptor.Entry{
			Name:    name,
			Payload: descriptor.NativeLibrary{},
		})
	}

	return descriptor.New(records)
}
