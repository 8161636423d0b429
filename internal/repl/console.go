package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// console is the line-oriented operator terminal.
type console struct {
	in  *bufio.Reader
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewReader(in), out: out}
}

// Prompt prints msg and reads one line without its line ending. It returns
// io.EOF once the input is exhausted.
func (c *console) Prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
