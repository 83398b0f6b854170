package main

import "github.com/jsphweid/incipitdex/cmd"

func main() {
	cmd.Execute()
}
