package main

import "github.com/goplus/zigbuild/cmd/zigbuild/internal"

func main() {
	internal.Execute()
}
