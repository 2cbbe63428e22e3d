// pngme - hide, reveal, remove and search for data in the chunks of
// PNG images.
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//
// The chunk container format is handled by png.go, chunk.go and
// chunktype.go; this file only dispatches subcommands and reports
// their results.

package main

import (
	"flag"
	"fmt"
	"os"
)

var commands = map[string]func([]string) int{
	"encode": cmdEncode,
	"decode": cmdDecode,
	"remove": cmdRemove,
	"print":  cmdPrint,
	"grep":   cmdGrep,
}

func usage() {
	o := flag.CommandLine.Output()
	fmt.Fprintf(o, "Usage: %s <command> [options] <args>\n\n", os.Args[0])
	fmt.Fprintln(o, "Commands:")
	fmt.Fprintln(o, "  encode [-o out.png] <file> <type> <message>")
	fmt.Fprintln(o, "\thide a message in a chunk of the given type")
	fmt.Fprintln(o, "  decode <file> <type>")
	fmt.Fprintln(o, "\tprint the message stored in the first chunk of the given type")
	fmt.Fprintln(o, "  remove [-o out.png] <file> <type>")
	fmt.Fprintln(o, "\tremove the first chunk of the given type")
	fmt.Fprintln(o, "  print <file>")
	fmt.Fprintln(o, "\tlist every chunk with its length and properties")
	fmt.Fprintln(o, "  grep [-i] [-w] <regex> <file> [file, ...]")
	fmt.Fprintln(o, "\tsearch the text chunks of the given files")
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
	os.Exit(cmd(args[1:]))
}
