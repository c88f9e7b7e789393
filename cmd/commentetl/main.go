package main

import "github.com/dbsmedya/commentetl/cmd/commentetl/cmd"

func main() {
	cmd.Execute()
}
