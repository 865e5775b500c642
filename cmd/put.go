package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doxxx/coap-cli/message/codes"
)

var putCmd = &cobra.Command{
	Use:   "put URL",
	Short: "Request that the resource be updated or created with the submitted data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmit(cmd, args[0], codes.PUT)
	},
}

func init() {
	submitFlags(putCmd)
	rootCmd.AddCommand(putCmd)
}
