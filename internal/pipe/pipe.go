// Package pipe copies the integers of an input file through a queue into an
// output file, one value per line.
package pipe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-queue/pkg/datastructs/queue"
)

// Pipe runs the queuepipe workflow. Missing or unwritable files are logged
// and produce empty output; they are not reported as errors.
type Pipe struct {
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
}

// New creates a Pipe that reads filenames from stdin when none are given and
// prints the empty-queue demonstration to stdout.
func New(log *zap.Logger, stdin io.Reader, stdout io.Writer) *Pipe {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipe{log: log, stdin: stdin, stdout: stdout}
}

// Run executes the workflow. args holds the positional arguments; the first
// two are used as input and output paths when present.
func (p *Pipe) Run(args []string) error {
	if err := p.showEmpty(); err != nil {
		return err
	}

	in, out, err := p.filenames(args)
	if err != nil {
		return err
	}

	alloc := queue.NewCountingAllocator[int](nil)
	q := queue.NewWithAllocator[int](alloc)
	p.ingest(in, q)

	cp := q.Clone()
	p.emit(out, cp)

	q.Reset()
	cp.Reset()
	p.log.Debug("queue released",
		zap.Uint64("allocated", alloc.Allocated()),
		zap.Uint64("released", alloc.Released()),
		zap.Int64("live", alloc.Live()),
	)
	return nil
}

// showEmpty prints the error reported by Top on a new queue.
func (p *Pipe) showEmpty() error {
	if _, err := queue.New[int]().Top(); err != nil {
		if _, werr := fmt.Fprintln(p.stdout, err); werr != nil {
			return errors.Wrap(werr, "pipe: write stdout")
		}
	}
	return nil
}

// filenames returns the input and output paths from args, or from the first
// two lines of stdin when fewer than two args are given. Missing lines yield
// empty paths.
func (p *Pipe) filenames(args []string) (string, string, error) {
	if len(args) >= 2 {
		return args[0], args[1], nil
	}

	// Lines are read whole; a path of any length is handed to the open call.
	var names [2]string
	br := bufio.NewReader(p.stdin)
	for i := range names {
		line, err := br.ReadString('\n')
		names[i] = strings.TrimSpace(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", errors.Wrap(err, "pipe: read filenames")
		}
	}
	return names[0], names[1], nil
}

// ingest pushes the integers of the file at path onto q.
func (p *Pipe) ingest(path string, q queue.Queue[int]) {
	f, err := os.Open(path)
	if err != nil {
		p.log.Warn("open input failed", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	res, err := queue.ReadFrom[int](f, q, queue.ParseInt)
	if err != nil {
		p.log.Warn("read input failed", zap.String("path", path), zap.Error(err))
	}
	p.log.Info("input read",
		zap.String("path", path),
		zap.Int("pushed", res.Pushed),
		zap.Int("skipped", res.Skipped),
	)
}

// emit drains q into the file at path.
func (p *Pipe) emit(path string, q queue.Queue[int]) {
	f, err := os.Create(path)
	if err != nil {
		p.log.Warn("create output failed", zap.String("path", path), zap.Error(err))
		return
	}

	bw := bufio.NewWriter(f)
	n, err := queue.WriteTo[int](bw, q, queue.FormatInt)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		p.log.Error("write output failed", zap.String("path", path), zap.Error(err))
		return
	}
	p.log.Info("output written", zap.String("path", path), zap.Int64("bytes", n))
}
