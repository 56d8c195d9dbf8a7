package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// InputFunc returns the next line of user input. It returns io.EOF when the
// input is exhausted and ctx.Err() when ctx is done first.
type InputFunc func(ctx context.Context) (string, error)

type inputLine struct {
	text string
	err  error
}

// LineReader reads lines from in on a background goroutine so that waiting
// for input can be abandoned when ctx is cancelled. Lines have no length
// limit; a final line without a newline is still returned.
func LineReader(in io.Reader) InputFunc {
	lines := make(chan inputLine)
	var once sync.Once
	start := func() {
		go func() {
			defer close(lines)
			br := bufio.NewReader(in)
			for {
				text, err := br.ReadString('\n')
				if text != "" {
					lines <- inputLine{text: strings.TrimRight(text, "\r\n")}
				}
				if err != nil {
					if !errors.Is(err, io.EOF) {
						lines <- inputLine{err: err}
					}
					return
				}
			}
		}()
	}

	return func(ctx context.Context) (string, error) {
		once.Do(start)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return "", io.EOF
			}
			return l.text, l.err
		}
	}
}
