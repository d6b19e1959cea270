package main

import (
	"fmt"
	"os"
)

func exiter() {
	os.Exit(1)
}

func main() {
	fmt.Println("entering main")
	defer os.Exit(0) // want "direct os.Exit call in main function"
	os.Exit(1)       // want "direct os.Exit call in main function"
}
