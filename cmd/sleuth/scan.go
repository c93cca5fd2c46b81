package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bytesleuth/sleuth"
	"github.com/bytesleuth/sleuth/pkg/enum"
	"github.com/bytesleuth/sleuth/pkg/matcher"
	"github.com/bytesleuth/sleuth/pkg/signature"
	"github.com/bytesleuth/sleuth/pkg/store"
	"github.com/bytesleuth/sleuth/pkg/types"
)

var (
	scanSignaturesPath string
	scanSigsInclude    string
	scanSigsExclude    string
	scanOutputPath     string
	scanOutputFormat   string
	scanWindowSize     int
	scanMaxFileSize    int64
	scanIncludeHidden  bool
	scanIncremental    bool
	scanNoColor        bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Classify files by their magic bytes",
	Long:  "Classify a file or directory tree by matching leading bytes against the signature table",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSignaturesPath, "signatures", "", "Path to custom signature YAML file")
	scanCmd.Flags().StringVar(&scanSigsInclude, "sigs-include", "", "Include signatures matching regex pattern (comma-separated)")
	scanCmd.Flags().StringVar(&scanSigsExclude, "sigs-exclude", "", "Exclude signatures matching regex pattern (comma-separated)")
	scanCmd.Flags().StringVar(&scanOutputPath, "output", "sleuth.db", "Output database path (:memory: to skip persistence)")
	scanCmd.Flags().StringVar(&scanOutputFormat, "format", "human", "Output format: json, human")
	// 512 bytes covers every builtin signature, including tar's magic at offset 257
	scanCmd.Flags().IntVar(&scanWindowSize, "window-size", 512, "Leading bytes to read per file")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 0, "Skip files larger than this many bytes (0 = no limit)")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().BoolVar(&scanIncremental, "incremental", false, "Skip windows already recorded in the output database")
	scanCmd.Flags().BoolVar(&scanNoColor, "no-color", false, "Disable colored output")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	// Validate target exists
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}

	// Load signatures
	sigs, err := loadSignatures(scanSignaturesPath, scanSigsInclude, scanSigsExclude)
	if err != nil {
		return fmt.Errorf("loading signatures: %w", err)
	}

	set, err := types.NewSet(sigs)
	if err != nil {
		return fmt.Errorf("building signature set: %w", err)
	}

	// Create matcher
	m, err := matcher.New(matcher.Config{Set: set})
	if err != nil {
		return fmt.Errorf("creating matcher: %w", err)
	}

	// Create store
	s, err := store.New(store.Config{
		Path: scanOutputPath,
	})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	// Create enumerator
	enumerator := enum.NewFilesystemEnumerator(enum.Config{
		Root:          target,
		WindowSize:    scanWindowSize,
		IncludeHidden: scanIncludeHidden,
		MaxFileSize:   scanMaxFileSize,
	})

	// Scan. The enumerator invokes the callback from parallel reader
	// goroutines, so the counters use atomics.
	ctx := context.Background()
	var classified, recognized, skipped atomic.Int64

	err = enumerator.Enumerate(ctx, func(win []byte, size int64, id types.FileID, path string) error {
		// Check for incremental scanning
		if scanIncremental {
			exists, err := s.FileExists(id)
			if err != nil {
				return fmt.Errorf("checking file: %w", err)
			}
			if exists {
				skipped.Add(1)
				return nil
			}
		}

		if err := s.AddFile(id, size); err != nil {
			return fmt.Errorf("storing file: %w", err)
		}

		fallback := sleuth.FallbackForPath(path)
		result := m.Classify(win, fallback)

		classified.Add(1)
		if result.Matched {
			recognized.Add(1)
		}

		return s.AddDetection(&types.Detection{
			FileID:   id,
			Path:     path,
			Size:     size,
			Fallback: fallback,
			Result:   result,
		})
	})

	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	// Summary goes to stderr when emitting JSON to keep stdout pure
	summaryOut := cmd.OutOrStdout()
	if scanOutputFormat == "json" {
		summaryOut = cmd.ErrOrStderr()
	}
	if !quiet {
		if scanIncremental {
			fmt.Fprintf(summaryOut, "Scan complete: %d files classified, %d recognized (%d skipped)\n", classified.Load(), recognized.Load(), skipped.Load())
		} else {
			fmt.Fprintf(summaryOut, "Scan complete: %d files classified, %d recognized\n", classified.Load(), recognized.Load())
		}
		if scanOutputPath != ":memory:" {
			fmt.Fprintf(summaryOut, "Results stored in: %s\n", scanOutputPath)
		}
	}

	detections, err := s.GetAllDetections()
	if err != nil {
		return fmt.Errorf("retrieving detections: %w", err)
	}

	if scanOutputFormat == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(detections)
	}

	return outputDetectionsTable(cmd, detections)
}

func loadSignatures(path, include, exclude string) ([]*types.Signature, error) {
	loader := signature.NewLoader()

	var sigs []*types.Signature
	var err error

	if path != "" {
		sigs, err = loader.LoadSignatureFile(path)
	} else {
		sigs, err = loader.LoadBuiltinSignatures()
	}
	if err != nil {
		return nil, err
	}

	// Apply filtering if patterns specified
	if include != "" || exclude != "" {
		config := signature.FilterConfig{
			Include: signature.ParsePatterns(include),
			Exclude: signature.ParsePatterns(exclude),
		}
		sigs, err = signature.Filter(sigs, config)
		if err != nil {
			return nil, fmt.Errorf("filtering signatures: %w", err)
		}
	}

	return sigs, nil
}

func outputDetectionsTable(cmd *cobra.Command, detections []*types.Detection) error {
	out := cmd.OutOrStdout()

	if len(detections) == 0 {
		fmt.Fprintf(out, "\nNo files classified.\n")
		return nil
	}

	useColor := !scanNoColor && term.IsTerminal(int(os.Stdout.Fd()))
	matchedMark := color.New(color.FgGreen)
	fallbackMark := color.New(color.FgYellow)
	if !useColor {
		matchedMark.DisableColor()
		fallbackMark.DisableColor()
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "\nPath\tType\tSignature\tSize\n")
	fmt.Fprintf(w, "----\t----\t---------\t----\n")

	for _, d := range detections {
		if d.Result.Matched {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.Path, matchedMark.Sprint(d.Result.MIME), d.Result.SignatureID, d.Size)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.Path, fallbackMark.Sprint(d.Result.MIME), "(fallback)", d.Size)
		}
	}

	return nil
}
