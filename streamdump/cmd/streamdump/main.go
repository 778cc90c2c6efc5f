package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/amfkit/bytestream/streamdump"
)

var hexdump = flag.Bool("hex", false, "print a raw hex dump instead of decoding values")

func data(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(file)
	if err != nil {
		return nil, err
	}

	len := fi.Size()
	data := make([]byte, len)

	_, err = f.Read(data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

func printHex(d []byte) {
	for off := 0; off < len(d); off += 16 {
		end := off + 16
		if end > len(d) {
			end = len(d)
		}

		fmt.Printf("%08x ", off)
		for _, b := range d[off:end] {
			fmt.Printf(" %02x", b)
		}
		fmt.Println()
	}
}

func printEntry(e streamdump.Entry) {
	switch e.Kind {
	case streamdump.NullKind, streamdump.UndefinedKind:
		fmt.Printf("[%6d] %v\n", e.Offset, e.Kind)
	case streamdump.StringKind:
		fmt.Printf("[%6d] %v = %q\n", e.Offset, e.Kind, e.Value)
	default:
		fmt.Printf("[%6d] %v = %v\n", e.Offset, e.Kind, e.Value)
	}
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		panic("Usage: streamdump [-hex] <file>")
	}

	file := flag.Arg(0)
	d, err := data(file)
	if err != nil {
		panic(err)
	}

	if *hexdump {
		printHex(d)
		return
	}

	entries, err := streamdump.Dump(d)
	if err != nil {
		panic(err)
	}

	fmt.Printf(`
File    = %v
Length  = %v
Entries = %v

`, file, len(d), len(entries))

	for _, e := range entries {
		printEntry(e)
	}
}
