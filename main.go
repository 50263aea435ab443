package main

import "github.com/theirongolddev/growthcast/cmd"

func main() {
	cmd.Execute()
}
