// Package cmd contains the castxml command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ceeaziza/CastXML/internal/config"
	"github.com/ceeaziza/CastXML/internal/frontend"
	"github.com/ceeaziza/CastXML/internal/gccxml"
)

var (
	// Version is the current version of castxml
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configPath string
	startNames []string
	outputPath string
	gzipOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "castxml [flags] <source>",
	Short: "Serialize a C/C++ AST to a GCC-XML compatible document",
	Long: `castxml parses a C or C++ source file and serializes the reachable
declarations and types into a GCC-XML compatible document.

Every node is emitted exactly once with a stable identifier, and every
cross-reference in the document resolves to an element defined in the
same document. By default the whole translation unit is dumped; one or
more --start names restrict the dump to the named declarations, their
referenced types, and stub records for their enclosing scopes.

Examples:
  castxml input.cxx                     # dump the whole translation unit
  castxml --start N::T input.cxx        # dump only N::T and what it needs
  castxml -o out.xml.gz input.cxx       # write a gzip-compressed document`,
	Args:         cobra.ExactArgs(1),
	RunE:         runDump,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringArrayVar(&startNames, "start", nil,
		"Scoped name to dump (repeatable; default: whole translation unit)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the document to this file (default: stdout)")
	rootCmd.Flags().BoolVar(&gzipOutput, "gzip", false,
		"Compress the document with gzip")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Path to config file (default: castxml.yaml, searched upward)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags win over config file values when set explicitly.
	if !cmd.Flags().Changed("start") && len(cfg.Start) > 0 {
		startNames = cfg.Start
	}
	if !cmd.Flags().Changed("output") && cfg.Output.Path != "" {
		outputPath = cfg.Output.Path
	}
	if !cmd.Flags().Changed("gzip") {
		gzipOutput = gzipOutput || cfg.Output.Gzip
	}

	if verbose {
		logFlags(cmd.Flags())
		fmt.Fprintf(os.Stderr, "castxml: parsing %s\n", args[0])
	}

	tu, err := frontend.LoadFile(args[0])
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(outputPath, gzipOutput)
	if err != nil {
		return err
	}
	if err := gccxml.Dump(w, tu, startNames); err != nil {
		closeOutput()
		return fmt.Errorf("writing document: %w", err)
	}
	return closeOutput()
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	return config.Load(wd)
}

// openOutput resolves the output sink: stdout or a file, optionally
// gzip-compressed. A .gz path implies compression. The returned close
// function flushes and closes whatever was opened.
func openOutput(path string, compress bool) (io.Writer, func() error, error) {
	if strings.HasSuffix(path, ".gz") {
		compress = true
	}

	var w io.Writer = os.Stdout
	var file *os.File
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating output file: %w", err)
		}
		file = f
		w = f
	}

	if !compress {
		return w, func() error {
			if file != nil {
				return file.Close()
			}
			return nil
		}, nil
	}

	zw := gzip.NewWriter(w)
	return zw, func() error {
		if err := zw.Close(); err != nil {
			if file != nil {
				file.Close()
			}
			return err
		}
		if file != nil {
			return file.Close()
		}
		return nil
	}, nil
}

func logFlags(flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		fmt.Fprintf(os.Stderr, "castxml: flag --%s=%s\n", f.Name, f.Value)
	})
}
