package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doxxx/coap-cli/message/codes"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Retrieve a representation of a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accept, err := cmd.Flags().GetStringSlice("accept")
		if err != nil {
			return err
		}
		decode, err := cmd.Flags().GetBool("decode")
		if err != nil {
			return err
		}
		return runExchange(cmd.Context(), args[0], codes.GET, nil, nil, accept, decode)
	},
}

func init() {
	getCmd.Flags().StringSlice("accept", nil, "acceptable content formats (comma-separated) for the response")
	getCmd.Flags().Bool("decode", false, "transcode an application/cbor response payload to JSON")
	rootCmd.AddCommand(getCmd)
}
