package main

import "github.com/matthijsbreemans/ocr/cmd/ocr/cmd"

func main() {
	cmd.Execute()
}
