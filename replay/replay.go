// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package replay parses and applies scripts of heatmap input events.
//
// A script is line oriented. Blank lines are ignored and '#' starts a
// comment. Commands:
//
//	click X Y [xN]          click at (X, Y), optionally N <= MaxRepeat times
//	reset                   clear heat and clicks
//	resize W H              resize the surface
//	dim [on|off|toggle]     background dimming
//	labels [on|off|toggle]  cluster labels
//	image PATH              load a background image
//
// Scripts may be zstd compressed; compression is detected from the
// content, not the file name.
package replay

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/heatmap"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("replay: syntax error")

// MaxRepeat bounds the repeat count of a single click command.
const MaxRepeat = 10000

// LineError reports a parse error on a specific line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("replay: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Op is a script command.
type Op int

const (
	OpClick Op = iota
	OpReset
	OpResize
	OpDim
	OpLabels
	OpImage
)

var opNames = [...]string{
	OpClick:  "click",
	OpReset:  "reset",
	OpResize: "resize",
	OpDim:    "dim",
	OpLabels: "labels",
	OpImage:  "image",
}

// String returns the command keyword.
func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Switch is the argument of a toggle command.
type Switch int

const (
	Toggle Switch = iota
	On
	Off
)

func (s Switch) String() string {
	switch s {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "toggle"
	}
}

// Command is one parsed script line.
type Command struct {
	Op   Op
	Line int

	// click: position and repeat count; resize: X and Y hold W and H.
	X, Y   int
	Repeat int

	Switch Switch
	Path   string
}

// String formats c as a script line.
func (c Command) String() string {
	switch c.Op {
	case OpClick:
		if c.Repeat > 1 {
			return fmt.Sprintf("click %d %d x%d", c.X, c.Y, c.Repeat)
		}
		return fmt.Sprintf("click %d %d", c.X, c.Y)
	case OpResize:
		return fmt.Sprintf("resize %d %d", c.X, c.Y)
	case OpDim, OpLabels:
		return c.Op.String() + " " + c.Switch.String()
	case OpImage:
		return "image " + c.Path
	default:
		return c.Op.String()
	}
}

// Script is a parsed event script.
type Script struct {
	Commands []Command

	// Dir resolves relative image paths. Empty means the working directory.
	Dir string
}

// zstdMagic is the little-endian zstd frame magic number.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Parse reads a script, decompressing it first when it is zstd framed.
func Parse(r io.Reader) (*Script, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("replay: zstd: %w", err)
		}
		defer dec.Close()
		return parse(dec)
	}
	return parse(br)
}

// ParseFile reads the script at path. Relative image paths in the script
// are resolved against the script's directory.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

func parse(r io.Reader) (*Script, error) {
	s := &Script{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		cmd, err := parseLine(text)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		cmd.Line = line
		s.Commands = append(s.Commands, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("replay: read: %w", err)
	}
	return s, nil
}

func parseLine(text string) (Command, error) {
	fields := strings.Fields(text)
	keyword, args := strings.ToLower(fields[0]), fields[1:]

	switch keyword {
	case "click":
		if len(args) != 2 && len(args) != 3 {
			return Command{}, fmt.Errorf("%w: click wants X Y [xN]", ErrSyntax)
		}
		x, y, err := parsePair(args[0], args[1])
		if err != nil {
			return Command{}, err
		}
		cmd := Command{Op: OpClick, X: x, Y: y, Repeat: 1}
		if len(args) == 3 {
			n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(args[2]), "x"))
			if err != nil || n < 1 || !strings.HasPrefix(strings.ToLower(args[2]), "x") {
				return Command{}, fmt.Errorf("%w: bad repeat %q", ErrSyntax, args[2])
			}
			if n > MaxRepeat {
				return Command{}, fmt.Errorf("%w: repeat %d exceeds %d", ErrSyntax, n, MaxRepeat)
			}
			cmd.Repeat = n
		}
		return cmd, nil

	case "reset":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: reset takes no arguments", ErrSyntax)
		}
		return Command{Op: OpReset}, nil

	case "resize":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: resize wants W H", ErrSyntax)
		}
		w, h, err := parsePair(args[0], args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: OpResize, X: w, Y: h}, nil

	case "dim", "labels":
		op := OpDim
		if keyword == "labels" {
			op = OpLabels
		}
		sw, err := parseSwitch(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Op: op, Switch: sw}, nil

	case "image":
		path := strings.TrimSpace(text[len(fields[0]):])
		if path == "" {
			return Command{}, fmt.Errorf("%w: image wants a path", ErrSyntax)
		}
		return Command{Op: OpImage, Path: path}, nil
	}
	return Command{}, fmt.Errorf("%w: unknown command %q", ErrSyntax, fields[0])
}

func parsePair(a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad number %q", ErrSyntax, a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad number %q", ErrSyntax, b)
	}
	return x, y, nil
}

func parseSwitch(args []string) (Switch, error) {
	if len(args) == 0 {
		return Toggle, nil
	}
	if len(args) > 1 {
		return Toggle, fmt.Errorf("%w: too many arguments", ErrSyntax)
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return On, nil
	case "off", "false", "0":
		return Off, nil
	case "toggle":
		return Toggle, nil
	}
	return Toggle, fmt.Errorf("%w: want on, off or toggle, got %q", ErrSyntax, args[0])
}

// Result summarizes an applied script.
type Result struct {
	Accepted int
	Rejected int

	// ImageErrors holds background load failures. They do not stop the
	// script.
	ImageErrors []error
}

// Apply runs every command against m in order.
func (s *Script) Apply(m *heatmap.Map) Result {
	var res Result
	for _, c := range s.Commands {
		switch c.Op {
		case OpClick:
			for range max(c.Repeat, 1) {
				if m.HandleClick(c.X, c.Y) {
					res.Accepted++
				} else {
					res.Rejected++
				}
			}
		case OpReset:
			m.Reset()
		case OpResize:
			m.Resize(c.X, c.Y)
		case OpDim:
			m.SetDimmed(c.Switch.apply(m.Dimmed()))
		case OpLabels:
			m.SetLabels(c.Switch.apply(m.LabelsShown()))
		case OpImage:
			if err := m.LoadBackground(s.resolve(c.Path)); err != nil {
				heatmap.Logger().Warn("replay: image", "line", c.Line, "err", err)
				res.ImageErrors = append(res.ImageErrors, &LineError{Line: c.Line, Err: err})
			}
		}
	}
	return res
}

func (s *Script) resolve(path string) string {
	if s.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Dir, path)
}

func (sw Switch) apply(cur bool) bool {
	switch sw {
	case On:
		return true
	case Off:
		return false
	default:
		return !cur
	}
}

// WriteTo writes the script in text form.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, c := range s.Commands {
		k, err := fmt.Fprintln(bw, c.String())
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
