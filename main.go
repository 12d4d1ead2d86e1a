package main

import "github.com/iksnae/gitter-session/cmd"

func main() {
	cmd.Execute()
}
