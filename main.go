package main

import "github.com/quubnetwork/quub/cmd/quub"

func main() {
	quub.Execute()
}
