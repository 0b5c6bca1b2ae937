package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/sqlclient"
)

const (
	prompt     = "novarel> "
	contPrompt = "...> "
)

const helpText = `meta commands:
  \q | quit | exit       quit
  \dt                    list tables
  \d <table>             describe a table
  \history               print history
  \help                  show help

sql:
  CREATE TABLE, INSERT INTO and SELECT ... FROM
  end statements with ';' (multiline input waits until ';')`

// statementComplete checks if we have a terminating ';' outside single quotes.
func statementComplete(buf string) bool {
	inQuote := false
	escaped := false

	for _, r := range buf {
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' && inQuote {
			escaped = true
			continue
		}
		if r == '\'' {
			inQuote = !inQuote
			continue
		}
		if r == ';' && !inQuote {
			return true
		}
	}
	return false
}

func isMetaCommand(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "\\") ||
		line == "quit" || line == "exit"
}

// runMeta handles one meta command and reports whether the REPL should quit.
func runMeta(w io.Writer, be backend, h *History, line string) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "\\q", "quit", "exit":
		return true
	case "\\help":
		fmt.Fprintln(w, helpText)
	case "\\history":
		h.Print(w, 50)
	case "\\dt":
		names, err := be.Tables()
		if err != nil {
			printError(w, "", err)
			break
		}
		if len(names) == 0 {
			fmt.Fprintln(w, "no tables")
		}
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
	case "\\d":
		if len(fields) != 2 {
			fmt.Fprintln(w, "usage: \\d <table>")
			break
		}
		info, err := be.Describe(strings.ToLower(fields[1]))
		if err != nil {
			printError(w, "", err)
			break
		}
		printTable(w, info)
	default:
		fmt.Fprintf(w, "unknown command: %s\n", line)
	}
	return false
}

// execute runs one statement buffer and prints what completed.
func execute(w io.Writer, be backend, sql string) error {
	res, err := be.Exec(sql)
	printResults(w, res)
	if err != nil {
		printError(w, sql, err)
	}
	return err
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".novarel_history"
	}
	return filepath.Join(home, ".novarel_history")
}

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:8866", "server address")
		timeout    = flag.Duration("timeout", 3*time.Second, "dial timeout")
		local      = flag.Bool("local", false, "use an embedded in-memory database instead of a server")
		histPath   = flag.String("history", defaultHistoryPath(), "history file path")
		histMax    = flag.Int("history-max", 2000, "max history lines loaded into memory")
		oneShotSQL = flag.String("c", "", "execute statements and exit")
	)
	flag.Parse()

	var be backend
	where := "embedded database"
	if *local {
		be = localBackend{db: novarel.NewDatabase()}
	} else {
		cli, err := sqlclient.Dial(*addr, *timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dial: %v\n", err)
			os.Exit(1)
		}
		be = remoteBackend{c: cli}
		where = *addr
	}
	defer func() { _ = be.Close() }()

	// one-shot mode
	if strings.TrimSpace(*oneShotSQL) != "" {
		if err := execute(os.Stdout, be, *oneShotSQL); err != nil {
			_ = be.Close()
			os.Exit(1)
		}
		return
	}

	h := NewHistory(*histPath)
	_ = h.Load(*histMax)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	// preload history into readline so the up arrow works immediately
	for _, line := range h.lines {
		_ = rl.SaveHistory(line)
	}

	var buf strings.Builder

	fmt.Printf("connected to %s\n", where)
	fmt.Println("type \\help for help")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// Ctrl+C clears current buffer
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt(prompt)
				continue
			}
			fmt.Println("^C")
			continue
		}
		if err != nil {
			// EOF
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && isMetaCommand(line) {
			if runMeta(os.Stdout, be, h, line) {
				return
			}
			continue
		}

		// accumulate sql
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if !statementComplete(buf.String()) {
			rl.SetPrompt(contPrompt)
			continue
		}

		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		rl.SetPrompt(prompt)

		_ = h.Append(stmt)
		_ = rl.SaveHistory(compactOneLine(stmt))

		_ = execute(os.Stdout, be, stmt)
	}
}
