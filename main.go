package main

import "github.com/jsphweid/ctransposer/cmd"

func main() {
	cmd.Execute()
}
