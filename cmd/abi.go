package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tgx-android/tgxmeta/abi"
)

// abiCmd represents the command provider for abi
var abiCmd = &cobra.Command{
	Use:           "abi",
	Short:         "Prints the ABI variant table",
	Long:          `Prints the product flavors the native libraries are packaged into, along with their ABI filters`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunAbi,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	abiCmd.Flags().Bool("json", false, "print the table as JSON")
	rootCmd.AddCommand(abiCmd)
}

// cmdRunAbi executes the abi CLI command
func cmdRunAbi(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return err
	}

	if asJSON {
		err = writeVariantsJSON(cmd.OutOrStdout(), abi.Variants())
	} else {
		err = writeVariantsTable(cmd.OutOrStdout(), abi.Variants())
	}
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return err
	}
	return nil
}

// writeVariantsJSON writes the variants as an indented JSON array.
func writeVariantsJSON(w io.Writer, variants []abi.Variant) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")
	return encoder.Encode(variants)
}

// writeVariantsTable writes the variants as aligned columns, one variant per line.
func writeVariantsTable(w io.Writer, variants []abi.Variant) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tFLAVOR\tNAME\tFILTERS\tMIN SDK\tSIDELOAD ONLY")
	for i, variant := range variants {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%t\n", i, variant.Flavor, variant.DisplayName,
			strings.Join(variant.Filters, ","), variant.MinSdkVersion(), variant.SideLoadOnly)
	}
	return tw.Flush()
}
