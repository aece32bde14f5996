package queue

import (
	"bufio"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ParseFunc converts one whitespace-free token into a value.
type ParseFunc[T any] func(token string) (T, error)

// FormatFunc appends the text form of v to dst and returns the extended slice.
type FormatFunc[T any] func(dst []byte, v T) []byte

// MaxTokenLen is the longest token ReadFrom hands to a ParseFunc. Longer
// tokens are discarded and counted as skipped.
const MaxTokenLen = bufio.MaxScanTokenSize / 2

// ReadResult reports what ReadFrom did with the tokens it scanned.
type ReadResult struct {
	Pushed  int // tokens parsed and pushed
	Skipped int // tokens that failed to parse or exceeded MaxTokenLen
}

// ReadFrom scans whitespace-separated tokens from r until EOF and pushes every
// token that parse accepts onto q. Tokens that fail to parse or are longer
// than MaxTokenLen are skipped and counted; they never stop the scan. A token
// is parsed whole, so a partly numeric token such as "12abc" is rejected
// entirely. The returned error only reports failures of r itself.
func ReadFrom[T any](r io.Reader, q Queue[T], parse ParseFunc[T]) (ReadResult, error) {
	var res ReadResult

	ts := &tokenSplitter{max: MaxTokenLen}
	sc := bufio.NewScanner(r)
	sc.Split(ts.split)
	for sc.Scan() {
		v, err := parse(sc.Text())
		if err != nil {
			res.Skipped++
			continue
		}
		q.Push(v)
		res.Pushed++
	}
	res.Skipped += ts.dropped

	if err := sc.Err(); err != nil {
		return res, errors.Wrap(err, "queue: read tokens")
	}
	return res, nil
}

// tokenSplitter is a bufio.SplitFunc source that splits on Unicode white
// space like bufio.ScanWords, but drops tokens longer than max instead of
// failing the scan with bufio.ErrTooLong.
type tokenSplitter struct {
	max        int
	discarding bool // inside a token that already exceeded max
	dropped    int  // tokens discarded for length
}

func (s *tokenSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	if !s.discarding {
		for width := 0; start < len(data); start += width {
			var r rune
			r, width = utf8.DecodeRune(data[start:])
			if !unicode.IsSpace(r) {
				break
			}
		}
	}

	for width, i := 0, start; i < len(data); i += width {
		if s.discarding && !atEOF && !utf8.FullRune(data[i:]) {
			// A multi-byte space may be split across reads.
			return i, nil, nil
		}
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if unicode.IsSpace(r) {
			if s.discarding {
				s.discarding = false
				return i + width, nil, nil
			}
			return i + width, data[start:i], nil
		}
		if !s.discarding && i-start >= s.max {
			s.discarding = true
			s.dropped++
			return i, nil, nil
		}
	}

	if s.discarding {
		// Throw away what is buffered; the token goes on past it.
		return len(data), nil, nil
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Request more data.
	return start, nil, nil
}

// WriteTo drains q into w through Top and Pop, writing one value per line.
// Every value, including the last, is followed by a newline.
// q is empty afterwards unless writing fails; pass a clone to keep the contents.
// A value whose write fails stays at the front of q.
func WriteTo[T any](w io.Writer, q Queue[T], format FormatFunc[T]) (int64, error) {
	var (
		total int64
		line  []byte
	)
	for !q.Empty() {
		v, err := q.Top()
		if err != nil {
			return total, err
		}

		line = append(format(line[:0], *v), '\n')
		n, err := w.Write(line)
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "queue: write value")
		}

		if err := q.Pop(); err != nil {
			return total, err
		}
	}

	return total, nil
}

// ParseInt parses a base-10 int token.
func ParseInt(token string) (int, error) {
	return strconv.Atoi(token)
}

// FormatInt appends the base-10 form of v.
func FormatInt(dst []byte, v int) []byte {
	return strconv.AppendInt(dst, int64(v), 10)
}
