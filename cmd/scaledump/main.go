// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Command scaledump decodes SCALE-encoded input against a type
// registry and renders it as JSON, one value per input file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/paritytech/scale-decode/scale"
	"github.com/paritytech/scale-decode/scale/testregistry"
)

func main() {
	typeFlag := flag.Uint("type", 0, "type id of the top-level value to decode")
	typesFlag := flag.String("types", "", "path to a YAML registry file describing type shapes")
	zstdFlag := flag.Bool("zstd", false, "decompress input with zstd before decoding")
	strictFlag := flag.Bool("strict", false, "require input to be fully consumed by one value")
	flag.Parse()

	if *typesFlag == "" {
		fmt.Fprintln(os.Stderr, "scaledump: -types is required")
		os.Exit(2)
	}
	registry, err := loadRegistry(*typesFlag)
	if err != nil {
		fail(err)
	}
	resolver := scale.NewCachingResolver(registry)

	o := bufio.NewWriter(os.Stdout)
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := dumpOne(o, arg, scale.TypeID(*typeFlag), resolver, *zstdFlag, *strictFlag); err != nil {
			fail(fmt.Errorf("input %s: %w", arg, err))
		}
	}
	if err := o.Flush(); err != nil {
		fail(err)
	}
}

func loadRegistry(path string) (scale.Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type registry: %w", err)
	}
	reg, err := testregistry.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing type registry: %w", err)
	}
	return reg, nil
}

func dumpOne(o io.Writer, arg string, id scale.TypeID, resolver scale.Resolver, useZstd, strict bool) error {
	var in io.Reader
	if arg == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("can't open %q: %w", arg, err)
		}
		defer f.Close()
		in = f
	}
	if useZstd {
		zr, err := zstd.NewReader(in)
		if err != nil {
			return fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		in = zr
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	r := scale.NewReader(data)
	v := scale.NewJSONVisitor(nil)
	var decodeErr error
	if strict {
		_, decodeErr = scale.DecodeWithVisitorStrict(r, id, resolver, v)
	} else {
		_, decodeErr = scale.DecodeWithVisitor(r, id, resolver, v)
	}
	if decodeErr != nil {
		return decodeErr
	}
	_, err = o.Write(v.Bytes())
	if err != nil {
		return err
	}
	_, err = o.Write([]byte{'\n'})
	return err
}

// fail prints err tagged with a fresh session id, so a batch of
// scaledump invocations whose stderr is interleaved can still be
// matched back to the invocation that produced each line.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "scaledump[%s]: %s\n", uuid.New().String(), err)
	os.Exit(1)
}
