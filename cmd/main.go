package main

import (
	"fmt"
	"os"

	"github.com/cowlnet/deployer/cmd/deployer"
)

func main() {
	rootCmd := deployer.BuildDeployerCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(deployer.ExitCode(err))
	}
}
