package main

import "worklog/internal/cli"

func main() {
	cli.Execute()
}
