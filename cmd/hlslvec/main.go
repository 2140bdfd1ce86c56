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

// hlslvec turns the color functions of an HLSL spectrum shader into
// image-wide routines and applies spectra to images.
//
// Usage:
//
//	hlslvec gen [--shader file.hlsl] [--output module.py]
//	hlslvec apply --input photo.png --spectra dir [--out-dir out/] [--noise noise.png]
//	hlslvec cpuinfo
//
// Every flag may also be set in a --config file or as an HLSLVEC_* environment
// variable (dashes become underscores).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

func main() {
	cmd := newRootCommand(viper.New())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
