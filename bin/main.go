// Package main is the entry point for the cicd CLI.
//
// cicd provisions an Elastic Beanstalk application and environment, a
// CodeBuild project and a CodePipeline that releases a GitHub repository
// through them.
//
//	cicd            # provision
//	cicd plan       # print what would be created
//	cicd synth      # render as a CDK cloud assembly
package main

import (
	"fmt"
	"os"

	"github.com/30Piraten/cicd/bin/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
