package main

import (
	"github.com/harrisonrobin/taskdump/cmd"
)

// version will be set at build time
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
