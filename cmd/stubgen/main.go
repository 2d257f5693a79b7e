// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command stubgen writes stub declarations for every type
// reachable from a set of root types.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/stubgen/internal/logging"
	"github.com/petar-djukic/stubgen/pkg/stubgen"
)

const version = "0.1.0"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		if hint := errors.FlattenHints(err); hint != "" {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stubgen",
		Short:         "Generate stub declarations from a type graph",
		Long:          "stubgen walks the types reachable from a set of root types and writes one declaration per in-scope type.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("provider", stubgen.ProviderCatalog, "Type metadata provider: catalog, go or java")
	flags.StringSlice("source", nil, "Catalog files or directories, Go package patterns, or Java source roots")
	flags.String("dir", ".", "Directory Go package patterns resolve against")
	flags.StringSlice("prefix", nil, "Namespace prefixes in scope")
	flags.StringSlice("root", nil, "Qualified names of the root types")
	flags.String("output", "", "Output root, cleared on every run")
	flags.String("ext", "java", "Declaration file extension")
	flags.String("decorations", "annotations", "Decoration style: annotations or methods")
	flags.Bool("walk-exceptions", false, "Walk method exception types")
	flags.Bool("static-fields", false, "Render non-constant static fields")
	flags.Bool("walk-arrays", false, "Walk array element types")
	flags.Bool("contract-roots-only", false, "Only contract-like roots start a traversal")
	flags.String("version-constant", "serialVersionUID", "Static constant rendered as a long literal")
	flags.Bool("commit", false, "Commit the regenerated output tree")
	flags.CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.Bool("json-logs", false, "Log as JSON")

	// Bind flags to viper.
	viper.BindPFlags(flags)

	// Env vars: STUBGEN_OUTPUT, STUBGEN_WALK_EXCEPTIONS, etc.
	viper.SetEnvPrefix("STUBGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".stubgen")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newLogger builds the logger selected by --verbose and --json-logs.
func newLogger() *zap.SugaredLogger {
	return logging.New(logging.Options{
		Verbosity: viper.GetInt("verbose"),
		JSON:      viper.GetBool("json-logs"),
	})
}

// configFromViper assembles the generator config from flags, environment
// and the config file.
func configFromViper(log *zap.SugaredLogger) stubgen.Config {
	return stubgen.Config{
		Provider:    stubgen.NormalizeProvider(viper.GetString("provider")),
		Sources:     viper.GetStringSlice("source"),
		Dir:         viper.GetString("dir"),
		Prefixes:    viper.GetStringSlice("prefix"),
		Roots:       viper.GetStringSlice("root"),
		Output:      viper.GetString("output"),
		Ext:         viper.GetString("ext"),
		Decorations: viper.GetString("decorations"),
		Policy: stubgen.Policy{
			WalkExceptions:     viper.GetBool("walk-exceptions"),
			RenderStaticFields: viper.GetBool("static-fields"),
			WalkArrayElements:  viper.GetBool("walk-arrays"),
			ContractRootsOnly:  viper.GetBool("contract-roots-only"),
			VersionConstant:    viper.GetString("version-constant"),
		},
		Commit: viper.GetBool("commit"),
		Logger: log,
	}
}

// newGenerator validates the config and attaches a hint to config errors.
func newGenerator(log *zap.SugaredLogger) (stubgen.Generator, stubgen.Config, error) {
	cfg := configFromViper(log)
	g, err := stubgen.New(cfg)
	if err != nil {
		return nil, cfg, errors.WithHint(err,
			"set --prefix, --root, --output and --source, or put them in .stubgen.yaml")
	}
	return g, cfg, nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print stubgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stubgen %s\n", version)
		},
	}
}
