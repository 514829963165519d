package main

import (
	root "github.com/jeluard/cardano-zkvms/cmd"
)

func main() {
	root.Execute()
}
