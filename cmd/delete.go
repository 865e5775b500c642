package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doxxx/coap-cli/message/codes"
)

var deleteCmd = &cobra.Command{
	Use:   "delete URL",
	Short: "Request that the resource be deleted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accept, err := cmd.Flags().GetStringSlice("accept")
		if err != nil {
			return err
		}
		return runExchange(cmd.Context(), args[0], codes.DELETE, nil, nil, accept, false)
	},
}

func init() {
	deleteCmd.Flags().StringSlice("accept", nil, "acceptable content formats (comma-separated) for the response")
	rootCmd.AddCommand(deleteCmd)
}
