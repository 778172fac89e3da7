// Package shell implements the interactive menu for the catalog. Each
// completed form runs one catalog operation, and so one transaction.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// errBack returns from a sub-menu to the main menu.
var errBack = errors.New("back to main menu")

// Shell reads menu choices from in and writes prompts and results to out.
type Shell struct {
	svc    *catalog.Service
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the shell logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// New returns a shell over svc.
func New(svc *catalog.Service, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{svc: svc, in: bufio.NewScanner(in), out: out, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the main menu until the user quits or input ends. It returns
// an error only for failures the shell cannot recover from: an
// IntegrityError, a store failure, or a read error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.printf("\n******** MAIN MENU ********\n")
		s.printf("1. Add a new object\n2. Show object information\n3. Delete a book\n4. List primary keys\n\nOr enter Q to quit.\n\n")
		choice, err := s.readLine("Choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToUpper(choice) {
		case "1":
			if err = s.addMenu(ctx); err == nil {
				s.printf("\nCommitted.\n")
			}
		case "2":
			err = s.infoMenu(ctx)
		case "3":
			err = s.deleteBook(ctx)
		case "4":
			err = s.listKeys(ctx)
		case "Q":
			s.printf("\nExiting.\n")
			return nil
		default:
			s.printf("\nPlease select a valid option.\n")
			continue
		}
		if err = s.report(err); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// report prints the outcome of one operation. Errors the user can act on
// are printed and cleared; anything else is returned.
func (s *Shell) report(err error) error {
	var cv *types.ConstraintViolation
	switch {
	case err == nil, errors.Is(err, errBack):
		return nil
	case errors.Is(err, io.EOF):
		return err
	case errors.As(err, &cv):
		s.printf("\nError: %s. Rolled back.\n", cv.Error())
		return nil
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrWrongVariant),
		errors.Is(err, types.ErrNoPublishers),
		errors.Is(err, types.ErrNoAuthors):
		s.printf("\nError: %v. Rolled back.\n", err)
		return nil
	default:
		s.logger.Error().Err(err).Msg("shell operation failed")
		return err
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// readLine prints prompt and returns the next input line, trimmed.
func (s *Shell) readLine(prompt string) (string, error) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readInt prompts until the input parses as an integer.
func (s *Shell) readInt(prompt string) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		s.printf("Error: %q is not a number; please try again.\n", line)
	}
}

// menu prints title and the numbered options, then returns the index of
// the chosen one. An empty line or B goes back.
func (s *Shell) menu(title string, options ...string) (int, error) {
	for {
		s.printf("\n******** %s ********\n", title)
		for i, o := range options {
			s.printf("%d. %s\n", i+1, o)
		}
		s.printf("\nOr enter B to go back.\n\n")
		line, err := s.readLine("Choice: ")
		if err != nil {
			return 0, err
		}
		if line == "" || strings.EqualFold(line, "B") {
			return 0, errBack
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		s.printf("\nPlease select a valid option.\n")
	}
}

// retry runs form until it returns something other than a ValidationError.
// Validation failures happen before any store access, so the user can
// correct the input and submit again.
func (s *Shell) retry(form func() error) error {
	for {
		err := form()
		if !types.IsValidation(err) {
			return err
		}
		s.printf("Error: %v; please try again.\n", err)
	}
}
