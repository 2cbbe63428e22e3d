// Subcommand implementations. All file I/O happens here; the chunk
// codec itself only ever sees in-memory byte buffers.
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// cmdEncode wraps a message in a chunk of the given type and inserts it
// before the IEND chunk, rewriting the file (or -o) in place.
func cmdEncode(args []string) int {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	out := fs.String("o", "", "Write result here instead of rewriting the input")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 3 {
		fmt.Fprintf(fs.Output(), "Usage: encode [-o out.png] <file> <type> <message>\n")
		return 2
	}
	filename, code, message := rest[0], rest[1], rest[2]

	t, err := ChunkTypeFromString(code)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	png, err := loadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := png.AppendChunk(NewChunk(t, []byte(message))); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, err)
		return 2
	}
	if err := writeFile(filename, *out, png); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}

// cmdDecode prints the payload of the first chunk with the given type.
func cmdDecode(args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: decode <file> <type>\n")
		return 2
	}
	filename, code := args[0], args[1]

	png, err := loadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	c := png.ChunkByType(code)
	if c == nil {
		fmt.Fprintf(os.Stderr, "%s: no chunk of type %q\n", filename, code)
		return 1
	}
	msg, err := c.DataString()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, err)
		return 2
	}
	fmt.Println(msg)
	return 0
}

// cmdRemove deletes the first chunk with the given type and rewrites
// the file (or -o), printing the removed payload if it is text.
func cmdRemove(args []string) int {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	out := fs.String("o", "", "Write result here instead of rewriting the input")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 2 {
		fmt.Fprintf(fs.Output(), "Usage: remove [-o out.png] <file> <type>\n")
		return 2
	}
	filename, code := rest[0], rest[1]

	png, err := loadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	c, err := png.RemoveChunkByType(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", filename, err)
		return 1
	}
	if err := writeFile(filename, *out, png); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if msg, err := c.DataString(); err == nil {
		fmt.Println(msg)
	}
	return 0
}

// cmdPrint lists every chunk in file order with its data length and the
// properties encoded in its type code's case bits.
func cmdPrint(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: print <file>\n")
		return 2
	}
	filename := args[0]

	png, err := loadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Printf("%s: %d chunks\n", filename, len(png.Chunks()))
	for _, c := range png.Chunks() {
		fmt.Printf("  %s [%s]\n", c, describeType(c.Type))
	}
	return 0
}

func describeType(t ChunkType) string {
	parts := make([]string, 0, 4)
	if t.IsCritical() {
		parts = append(parts, "critical")
	} else {
		parts = append(parts, "ancillary")
	}
	if t.IsPublic() {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if t.IsSafeToCopy() {
		parts = append(parts, "safe-to-copy")
	}
	if !t.IsReservedBitValid() {
		parts = append(parts, "reserved-bit-set")
	}
	return strings.Join(parts, ",")
}

// cmdGrep searches for the supplied regex in the text chunks of the
// supplied PNG images. If a match is found, prints the filename.
func cmdGrep(args []string) int {
	fs := flag.NewFlagSet("grep", flag.ExitOnError)
	caseins := fs.Bool("i", false, "Make regexp case-insensitive")
	showmatch := fs.Bool("w", false, "Show matching text chunks")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprintf(fs.Output(), "Usage: grep [options] <regex> <file> [file, ...]\n")
		fs.PrintDefaults()
		return 2
	}
	re := rest[0]
	if *caseins {
		re = "(?i)" + re
	}
	rx, err := regexp.Compile(re)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid regexp '%s': %s\n", re, err)
		return 2
	}

	ret := 1
	for _, filename := range rest[1:] {
		found, chunks, err := grepFile(filename, rx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		if found {
			fmt.Println(filename)
			if *showmatch {
				for _, m := range chunks {
					fmt.Printf("%#v\n", m)
				}
			}
			ret = 0
		}
	}
	return ret
}

func grepFile(filename string, rx *regexp.Regexp) (bool, []string, error) {
	png, err := loadFile(filename)
	if err != nil {
		return false, nil, err
	}
	var chunks []string
	for _, tc := range png.TextChunks() {
		if rx.FindStringIndex(tc) != nil {
			chunks = append(chunks, tc)
		}
	}
	return len(chunks) > 0, chunks, nil
}

func loadFile(filename string) (*PNG, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	png, err := ParsePNG(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return png, nil
}

// writeFile serializes the PNG to the -o target, or over the input file
// when none was given.
func writeFile(filename, out string, png *PNG) error {
	target := filename
	if out != "" {
		target = out
	}
	return os.WriteFile(target, png.Bytes(), 0644)
}
