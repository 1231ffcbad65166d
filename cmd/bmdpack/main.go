package main

import (
	"flag"
	"fmt"
	"os"

	"statue-viewer/internal/bmd"
	"statue-viewer/internal/crypto"
)

func main() {
	version := flag.Int("version", bmd.VersionXOR, "Output version: 10 (plain) or 12 (XOR)")
	decoder := flag.String("decoder", "", "Decoder key file for v15 input")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: bmdpack [-version 10|12] [-decoder key] in.bmd out.bmd")
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)
	outVersion, err := outputVersion(*version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var key bmd.KeySource
	if *decoder != "" {
		key = func() ([crypto.LEAKeySize]byte, error) { return crypto.LoadKey(*decoder) }
	}

	m, err := bmd.Parse(in, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	raw, err := bmd.Encode(m, outVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, raw, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: v%d -> v%d, %d meshes, %d bones, %d bytes\n", out, m.Version, outVersion, len(m.Meshes), len(m.Bones), len(raw))
}

// outputVersion checks the -version flag before it is narrowed to a byte.
func outputVersion(v int) (byte, error) {
	switch v {
	case bmd.VersionPlain, bmd.VersionXOR:
		return byte(v), nil
	}
	return 0, fmt.Errorf("unsupported output version %d (want %d or %d)", v, bmd.VersionPlain, bmd.VersionXOR)
}
