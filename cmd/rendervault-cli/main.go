package main

import "rendervault/cmd/rendervault-cli/cmd"

func main() {
	cmd.Execute()
}
