// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/hueshift/hlslvec/hlsl"
	"github.com/hueshift/hlslvec/transpile"
)

// defaultShader is used when --shader is not given.
//
//go:embed spectrum.hlsl
var defaultShader string

const defaultShaderName = "spectrum.hlsl"

// env is the state shared by the subcommands of one invocation.
type env struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	e := &env{v: v}
	root := &cobra.Command{
		Use:           "hlslvec",
		Short:         "Vectorize HLSL spectrum shaders and apply spectra to images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (YAML, JSON or TOML)")
	flags.BoolP("verbose", "v", false, "log debug messages")
	flags.String("shader", "", "HLSL shader source (default: the built-in spectrum shader)")
	flags.String("entry", transpile.DefaultEntryPoint, "pixel shader function backing apply_spectrum")

	root.AddCommand(newGenCommand(e), newApplyCommand(e), newCPUInfoCommand())
	return root
}

// setup loads configuration into viper and builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	e.v.SetEnvPrefix("HLSLVEC")
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := e.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}
	if path := e.v.GetString("config"); path != "" {
		e.v.SetConfigFile(path)
		if err := e.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	e.logger = newLogger(cmd.ErrOrStderr(), e.v.GetBool("verbose"))
	return nil
}

// newLogger writes text to terminals and JSON everywhere else.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// source loads the configured shader, or the built-in one.
func (e *env) source() (*hlsl.Source, error) {
	path := e.v.GetString("shader")
	if path == "" {
		return hlsl.Parse(defaultShaderName, defaultShader), nil
	}
	return hlsl.Load(path)
}

// generate runs the generator over the configured shader.
func (e *env) generate(target transpile.Target) (*transpile.Module, error) {
	src, err := e.source()
	if err != nil {
		return nil, err
	}
	g := &transpile.Generator{
		Source:     src,
		Target:     target,
		EntryPoint: e.v.GetString("entry"),
		Logger:     e.logger,
	}
	return g.Generate()
}
