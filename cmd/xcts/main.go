/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package main is the main package for the xcts tool.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/alecthomas/kong"
	checkCmd "github.com/crossplane-contrib/xcts/cmd/xcts/check"
	checklistCmd "github.com/crossplane-contrib/xcts/cmd/xcts/checklist"
	listCmd "github.com/crossplane-contrib/xcts/cmd/xcts/list"
	runCmd "github.com/crossplane-contrib/xcts/cmd/xcts/run"
	schemaCmd "github.com/crossplane-contrib/xcts/cmd/xcts/schema"
	"github.com/crossplane-contrib/xcts/cmd/xcts/version"
	internalConfig "github.com/crossplane-contrib/xcts/internal/config"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/spf13/afero"
)

// CLI represents the command-line interface.
type CLI struct {
	ConfigFile string            `default:"~/.config/xcts.yaml" help:"Path to xcts config file"                                         short:"c" type:"path"`
	Suite      map[string]string `help:"Root directory of a suite as NAME=DIR, overriding the config file" short:"s"`
	Check      checkCmd.Cmd      `cmd:""                         help:"Check the configuration and the suite roots"`
	Checklist  checklistCmd.Cmd  `cmd:""                         help:"Verify that a checklist covers every test of its suites exactly once"`
	List       listCmd.Cmd       `cmd:""                         help:"List the tests matched by queries"`
	Run        runCmd.Cmd        `cmd:""                         help:"Run the cases matched by queries"`
	Schema     schemaCmd.Cmd     `cmd:""                         help:"Print the JSON schema of spec files"`
	Version    version.Cmd       `cmd:""                         help:"Print the version of xcts"`
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("xcts"),
		kong.Description("A conformance test suite harness."),
		kong.UsageOnError(),
	)

	configPath := cli.ConfigFile
	fs := afero.NewOsFs()

	cfg, err := internalConfig.Load(fs, configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		configPath = ""
		cfg = internalConfig.Fallback()
	}

	if err := cfg.AddSuites(cli.Suite); err != nil {
		log.Fatalf("%v", err)
	}

	// Set config in the command structs
	cli.Check.Config = cfg
	cli.Check.ConfigPath = configPath
	cli.Checklist.Config = cfg
	cli.List.Config = cfg
	cli.Run.Config = cfg

	// Run the selected command
	err = ctx.Run()

	var exitErr *utils.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}
