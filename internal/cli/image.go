package cli

import (
	"fmt"
	"os"

	"shopyz-be/internal/imaging"

	"github.com/spf13/cobra"
)

func newCompressImageCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "compress-image <file>",
		Short: "Compress a photo into a JPEG data URI",
		Long: `Scale the image down to the console's maximum width and re-encode it as a
JPEG data URI, exactly as the admin upload does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			uri, err := imaging.Compress(f)
			if err != nil {
				return fmt.Errorf("failed to process %s: %w", args[0], err)
			}

			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
				return err
			}
			return os.WriteFile(out, []byte(uri), 0o644)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the data URI to a file instead of stdout")
	return cmd
}
