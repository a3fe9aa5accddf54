package main

import "github.com/altivainc/altiva/cmd"

func main() {
	cmd.Execute()
}
