package main

import "github.com/dmitrijs2005/labelshop/internal/cmsctl/cli"

func main() {
	cli.Execute()
}
