package views

import (
	"bufio"
	"fmt"
	"io"

	"rhystmorgan/assistant/internal/commands"
)

// RunPlain reads commands line by line from in until exit or end of input.
// Used when stdin is not a terminal.
func RunPlain(in io.Reader, out io.Writer, session *commands.Session) error {
	fmt.Fprintln(out, welcome)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, session.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		result := session.Feed(scanner.Text())
		if result.Output != "" {
			fmt.Fprintln(out, result.Output)
		}
		if result.Exit {
			return nil
		}
	}
}
