// Package main implements filebridge-link, a small utility for
// encoding filenames into share links and decoding links back.
// Useful for debugging download URLs without a running server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stratovia/filebridge/internal/link"
)

func main() {
	decode := flag.Bool("d", false, "decode a share link instead of encoding a filename")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	arg := flag.Arg(0)

	if *decode {
		filename, err := link.Decode(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "filebridge-link: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(filename)
		return
	}

	fmt.Println(link.Encode(arg))
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  filebridge-link <filename>      encode a filename into a share link
  filebridge-link -d <link>       decode a share link into a filename
`)
}
