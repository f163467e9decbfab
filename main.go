package main

import "github.com/cmmoran/classgen/cmd"

func main() {
	cmd.Execute()
}
