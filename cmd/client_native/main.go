// Command client_native runs a statement script against a server and prints
// the results as JSON lines.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tuannm99/novarel/internal/sqlerr"
	"github.com/tuannm99/novarel/sqlclient"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8866", "server address")
	file := flag.String("f", "", "script file to run (default stdin)")
	rw := flag.Duration("rw-timeout", 5*time.Second, "per request read/write timeout")
	flag.Parse()

	src, err := readScript(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read script: %v\n", err)
		os.Exit(1)
	}

	c, err := sqlclient.Dial(*addr, 2*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()

	c.SetRWTimeout(*rw)

	results, err := c.ExecContext(context.Background(), src)
	enc := json.NewEncoder(os.Stdout)
	for _, res := range results {
		_ = enc.Encode(res)
	}
	if err != nil {
		var e *sqlerr.Error
		if errors.As(err, &e) {
			fmt.Fprintf(os.Stderr, "%s error at %d..%d near %q: %s\n  %s\n",
				e.Kind, e.Start, e.End, sqlerr.Excerpt(src, e), e.Message, sqlerr.Highlight(src, e))
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		_ = c.Close()
		os.Exit(1)
	}
}

func readScript(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	return string(b), err
}
