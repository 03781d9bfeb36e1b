package main

import "chef-marketplace-api/cli"

func main() {
	cli.Execute()
}
