package cmd

import (
	"github.com/spf13/cobra"

	"github.com/doxxx/coap-cli/message"
	"github.com/doxxx/coap-cli/message/codes"
)

// submitFlags are shared by the commands that carry a request body.
func submitFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("accept", nil, "acceptable content formats (comma-separated) for the response")
	cmd.Flags().String("content-format", "", "content format of the submitted data")
	cmd.Flags().StringP("data", "d", "", "resource data")
	cmd.Flags().StringP("file", "f", "", "path to file containing resource data")
}

func runSubmit(cmd *cobra.Command, rawURL string, code codes.Code) error {
	accept, err := cmd.Flags().GetStringSlice("accept")
	if err != nil {
		return err
	}
	data, err := cmd.Flags().GetString("data")
	if err != nil {
		return err
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	body, err := loadBody(data, file)
	if err != nil {
		return err
	}
	var contentFormat *message.MediaType
	if cf, err := cmd.Flags().GetString("content-format"); err != nil {
		return err
	} else if cf != "" {
		mt, err := parseContentFormat(cf)
		if err != nil {
			return err
		}
		contentFormat = &mt
	}
	return runExchange(cmd.Context(), rawURL, code, body, contentFormat, accept, false)
}

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Request that the submitted data be processed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmit(cmd, args[0], codes.POST)
	},
}

func init() {
	submitFlags(postCmd)
	rootCmd.AddCommand(postCmd)
}
