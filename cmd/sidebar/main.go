package main

import "github.com/jasperwreed/sidebar/internal/cli"

func main() {
	cli.Execute()
}
