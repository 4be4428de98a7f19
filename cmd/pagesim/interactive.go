package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/krisalay/pagesim/config"
	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/reference"
	"github.com/krisalay/pagesim/render"
	"github.com/krisalay/pagesim/types"
)

const title = "Page Replacement Algorithm Solver"

// errQuit ends the menu loop without an error exit.
var errQuit = errors.New("quit")

func runInteractive(cmd *cobra.Command, in io.Reader) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := newSession(cmd.Context(), cfg, in, cmd.OutOrStdout())
	return s.Loop()
}

/*
session is the menu driven front end.

	reference string -> frames -> algorithm (1-5) -> run -> what next?

Settings are asked for once and kept until the user picks "change settings".
End of input behaves like choosing exit.
*/
type session struct {
	ctx     context.Context
	cfg     *config.Config
	in      *bufio.Scanner
	out     io.Writer
	console *render.Console
	seed    func() int64

	refs   []types.Page
	frames int
	last   []types.RunResult
}

func newSession(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) *session {
	return &session{
		ctx:     ctx,
		cfg:     cfg,
		in:      bufio.NewScanner(in),
		out:     out,
		console: render.NewConsole(out, colorOptions(cfg)...),
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// Loop runs the menu until the user exits or input ends.
func (s *session) Loop() error {
	s.console.Header(title)

	for {
		if err := s.iteration(); err != nil {
			if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
				s.console.Success("Thank you for using the " + title + "!")
				return nil
			}
			return err
		}
	}
}

func (s *session) iteration() error {
	if s.refs == nil {
		refs, err := s.readReferences()
		if err != nil {
			return err
		}
		s.refs = refs
	}
	if s.frames == 0 {
		frames, err := s.readFrames()
		if err != nil {
			return err
		}
		s.frames = frames
	}

	cfg := s.cfg.Clone()
	cfg.Frames = s.frames
	a, err := buildApp(cfg, s.out)
	if err != nil {
		return err
	}
	defer a.Close()

	choice, err := s.choose("Choose the algorithm to run:", "Enter your choice (1-5): ", menu)
	if err != nil {
		return err
	}

	switch choice {
	case "5":
		a.console.Help()
		return nil
	case "4":
		a.console.Header("Algorithm Comparison")
		cmp, err := a.sim.Compare(s.ctx, s.refs)
		if err != nil {
			return err
		}
		a.console.Comparison(s.refs, s.frames, cmp.Rows())
		s.last = cmp.Runs()
	default:
		pt, err := eviction.ParsePolicyType(choice)
		if err != nil {
			return err
		}
		a.console.Header("Running " + pt.Description() + " Algorithm")
		res, err := a.sim.Run(s.ctx, pt, s.refs)
		if err != nil {
			return err
		}
		s.last = []types.RunResult{res}
	}

	return s.next(a)
}

var menu = []string{
	"FIFO (First-In-First-Out)",
	"LRU (Least Recently Used)",
	"OPR/OPT (Optimal)",
	"Compare All Algorithms",
	"Help",
}

var nextMenu = []string{
	"Run another simulation",
	"Change current settings",
	"Save results to file",
	"Exit",
}

func (s *session) next(a *app) error {
	for {
		fmt.Fprintln(s.out)
		choice, err := s.choose("What would you like to do?", "Enter your choice (1-4): ", nextMenu)
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			return nil
		case "2":
			s.refs, s.frames = nil, 0
			return nil
		case "3":
			path, err := a.sim.Export("", s.last...)
			if err != nil {
				a.console.Error("Failed to save results: " + err.Error())
				continue
			}
			a.console.Success("Results saved to " + path)
		default:
			return errQuit
		}
	}
}

// choose prints a numbered menu and reads until a valid item number is entered.
func (s *session) choose(header, prompt string, items []string) (string, error) {
	s.console.AlgorithmHeader(header)
	valid := make([]string, len(items))
	for i, item := range items {
		valid[i] = strconv.Itoa(i + 1)
		fmt.Fprintf(s.out, "%s. %s\n", valid[i], item)
	}
	for {
		s.console.Prompt(prompt)
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		for _, v := range valid {
			if line == v {
				return line, nil
			}
		}
		s.console.Error(fmt.Sprintf("Please enter one of %s. Try again.", strings.Join(valid, ", ")))
	}
}

func (s *session) readReferences() ([]types.Page, error) {
	for {
		s.console.Info("Enter the reference string (space-separated integers), or \"random\" for a sample")
		s.console.Info("Example: 1 2 3 4 1 2 5 1 2 3 4 5")
		s.console.Prompt(">>> ")
		line, err := s.readLine()
		if err != nil {
			return nil, err
		}

		var l types.Loader = reference.StringLoader(line)
		if strings.EqualFold(line, "random") {
			l = reference.RandomLoader{Seed: s.seed()}
		}
		refs, err := l.Load(s.ctx)
		switch {
		case errors.Is(err, types.ErrEmptySequence):
			s.console.Error("Reference string cannot be empty. Please try again.")
		case err != nil:
			s.console.Error("Please enter only integers separated by spaces. Try again.")
		default:
			if strings.EqualFold(line, "random") {
				s.console.Info("Generated: " + render.JoinPages(refs))
			}
			return refs, nil
		}
	}
}

func (s *session) readFrames() (int, error) {
	for {
		s.console.Info("Enter the number of frames (1-20 recommended)")
		s.console.Prompt(">>> ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}

		frames, err := reference.ParseFrames(line)
		if err != nil {
			s.console.Error("Number of frames must be a positive integer. Please try again.")
			continue
		}
		if reference.IsLargeFrameCount(frames) {
			s.console.Warning("Large number of frames detected. This may affect display readability.")
			s.console.Prompt("Continue anyway? (y/n): ")
			answer, err := s.readLine()
			if err != nil {
				return 0, err
			}
			if answer = strings.ToLower(answer); answer != "y" && answer != "yes" {
				continue
			}
		}
		return frames, nil
	}
}

func (s *session) readLine() (string, error) {
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}
