package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bytesleuth/sleuth/pkg/signature"
	"github.com/bytesleuth/sleuth/pkg/types"
)

var (
	signaturesPath string
	outputFormat   string
)

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "Manage detection signatures",
	Long:  "Commands for listing and inspecting byte signatures",
}

var signaturesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available signatures",
	Long:  "Display all available signatures with their IDs, types, and patterns, in match priority order",
	RunE:  runSignaturesList,
}

func init() {
	signaturesCmd.AddCommand(signaturesListCmd)
	signaturesListCmd.Flags().StringVar(&signaturesPath, "signatures", "", "Path to custom signature YAML file")
	signaturesListCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table, json")
}

func runSignaturesList(cmd *cobra.Command, args []string) error {
	loader := signature.NewLoader()

	var sigs []*types.Signature
	var err error

	if signaturesPath != "" {
		sigs, err = loader.LoadSignatureFile(signaturesPath)
		if err != nil {
			return fmt.Errorf("loading signatures from %s: %w", signaturesPath, err)
		}
	} else {
		sigs, err = loader.LoadBuiltinSignatures()
		if err != nil {
			return fmt.Errorf("loading builtin signatures: %w", err)
		}
	}

	switch outputFormat {
	case "json":
		return outputSignaturesJSON(cmd, sigs)
	case "table":
		return outputSignaturesTable(cmd, sigs)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputSignaturesJSON(cmd *cobra.Command, sigs []*types.Signature) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(sigs)
}

func outputSignaturesTable(cmd *cobra.Command, sigs []*types.Signature) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tType\tOffset\tPattern\tExtensions\n")
	fmt.Fprintf(w, "--\t----\t------\t-------\t----------\n")

	for _, s := range sigs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			s.ID, s.MIME, s.Offset,
			signature.FormatPattern(s.Pattern),
			strings.Join(s.Extensions, ","))
	}

	return nil
}
