// Package command interprets scenario files: line-oriented ADD, REM and SAVE
// directives applied to a product manager.
//
//	# comment
//	ADD Belt;01.01.2023;Leather Belt;100;True
//	REM 100 <= special <= 300
//	SAVE output.txt
//
// Each line is independent. By default the first failing line stops the run
// and is returned as a *LineError; WithContinueOnError logs failures, keeps
// going and returns them all at the end.
package command

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/codec"
	"github.com/mesh-intelligence/stockroom/internal/manager"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Directive keywords.
const (
	KeywordAdd    = "ADD"
	KeywordRemove = "REM"
	KeywordSave   = "SAVE"
)

// LineError reports a scenario line that failed.
type LineError struct {
	Line int    // 1-based line number.
	Text string // Trimmed line text.
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Summary counts what a run did.
type Summary struct {
	RunID    string
	Lines    int // Lines read, including blanks and comments.
	Commands int // Directives executed successfully.
	Added    int
	Removed  int
	Saves    int
	Unknown  int // Lines with an unrecognized keyword.
	Failed   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d lines, %d commands: %d added, %d removed, %d saved, %d unknown, %d failed",
		s.Lines, s.Commands, s.Added, s.Removed, s.Saves, s.Unknown, s.Failed)
}

// Processor runs scenario directives against a Manager.
type Processor struct {
	manager         *manager.Manager
	logger          *zap.Logger
	continueOnError bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithContinueOnError makes a failing line a logged, counted failure instead
// of the end of the run.
func WithContinueOnError() Option {
	return func(p *Processor) { p.continueOnError = true }
}

// NewProcessor returns a Processor mutating m. A nil logger discards logs.
func NewProcessor(m *manager.Manager, logger *zap.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Processor{manager: m, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFile runs the scenario at path. A file that cannot be opened is
// logged and reported as an empty Summary with a nil error.
func (p *Processor) ProcessFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		p.logger.Error("cannot open command file", zap.String("path", path), zap.Error(err))
		return Summary{}, nil
	}
	defer f.Close()

	return p.Run(f)
}

// Run executes every line read from r.
func (p *Processor) Run(r io.Reader) (Summary, error) {
	sum := Summary{RunID: newRunID()}
	log := p.logger.With(zap.String("run", sum.RunID))
	log.Info("scenario started", zap.Bool("continue_on_error", p.continueOnError))

	var errs error
	scanner := codec.NewLineReader(r)
	for scanner.Scan() {
		sum.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		res, err := p.execute(line)
		if err != nil {
			sum.Failed++
			lineErr := &LineError{Line: sum.Lines, Text: line, Err: err}
			log.Error("failed processing line",
				zap.Int("line", sum.Lines),
				zap.String("text", line),
				zap.String("kind", types.KindOf(err)),
				zap.Error(err))
			if !p.continueOnError {
				return sum, lineErr
			}
			errs = multierr.Append(errs, lineErr)
			continue
		}
		if res.unknown {
			sum.Unknown++
			log.Warn("unknown command", zap.Int("line", sum.Lines), zap.String("text", line))
			continue
		}

		sum.Commands++
		sum.Added += res.added
		sum.Removed += res.removed
		if res.saved {
			sum.Saves++
		}
		log.Debug("command executed",
			zap.Int("line", sum.Lines),
			zap.String("text", line),
			zap.Int("products", p.manager.Len()))
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("reading command file: %w", err)
	}

	log.Info("scenario finished",
		zap.Int("commands", sum.Commands),
		zap.Int("failed", sum.Failed),
		zap.Int("products", p.manager.Len()))
	return sum, errs
}

// Execute runs a single directive line. Unknown keywords are an error here
// because there is no run to skip them in.
func (p *Processor) Execute(line string) error {
	res, err := p.execute(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if res.unknown {
		return types.Errorf(types.ErrCommandFormat, "unknown command %q", line)
	}
	return nil
}

// outcome is what one directive did.
type outcome struct {
	added   int
	removed int
	saved   bool
	unknown bool
}

func (p *Processor) execute(line string) (outcome, error) {
	keyword, arg := splitKeyword(line)

	switch keyword {
	case KeywordAdd:
		product, err := ParseAdd(arg)
		if err != nil {
			return outcome{}, err
		}
		p.manager.Add(product)
		return outcome{added: 1}, nil

	case KeywordRemove:
		n, err := p.remove(arg)
		if err != nil {
			return outcome{}, err
		}
		return outcome{removed: n}, nil

	case KeywordSave:
		if err := p.save(arg); err != nil {
			return outcome{}, err
		}
		return outcome{saved: true}, nil

	default:
		return outcome{unknown: true}, nil
	}
}

// splitKeyword separates the leading keyword from its trimmed argument.
func splitKeyword(line string) (keyword, arg string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
