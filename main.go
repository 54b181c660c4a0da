package main

import "github.com/tracklab/hdfsum/cmd"

func main() {
	cmd.Execute()
}
