package main

import "github.com/doxxx/coap-cli/cmd"

func main() {
	cmd.Execute()
}
