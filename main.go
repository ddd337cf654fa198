package main

import "github.com/saadjs/servings-cli/cmd/servings"

func main() {
	servings.Execute()
}
