// Command sfntshell is an interactive REPL for poking at a loaded font's
// cmap lookups and glyf outlines, built against the core font package's
// public API exactly as a pterm/readline-based CLI consumer would.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/naturezhm/sfntly/font"
	"github.com/naturezhm/sfntly/table/cmap"
	"github.com/naturezhm/sfntly/table/glyf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

func tracer() tracing.Trace {
	return tracing.Select("sfntcore.sfntshell")
}

type shell struct {
	repl *readline.Instance
	f    *font.Font
}

func main() {
	fontPath := flag.String("font", "", "Font file to load")
	flag.Parse()
	if *fontPath == "" {
		pterm.Error.Println("usage: sfntshell -font <path>")
		os.Exit(2)
	}
	buf, err := os.ReadFile(*fontPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	ff := font.NewFontFactory(font.Options{})
	f, err := ff.Load(buf)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	repl, err := readline.New("sfnt > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(5)
	}
	defer repl.Close()
	sh := &shell{repl: repl, f: f}
	pterm.Info.Println("Loaded font. Commands: tables | cmap <platform> <encoding> <char> | glyph <index> | quit")
	sh.loop()
}

func (sh *shell) loop() {
	for {
		line, err := sh.repl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			pterm.Info.Println("Goodbye!")
			return
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			pterm.Info.Println("Goodbye!")
			return
		case "tables":
			sh.cmdTables()
		case "cmap":
			sh.cmdCmap(fields[1:])
		case "glyph":
			sh.cmdGlyph(fields[1:])
		default:
			pterm.Error.Printf("unknown command: %s\n", fields[0])
		}
	}
}

func (sh *shell) cmdTables() {
	for _, t := range sh.f.Tables() {
		pterm.Println(t.Header().Tag.String())
	}
}

func (sh *shell) cmdCmap(args []string) {
	if len(args) != 3 {
		pterm.Error.Println("usage: cmap <platform> <encoding> <char>")
		return
	}
	pid, err1 := strconv.Atoi(args[0])
	eid, err2 := strconv.Atoi(args[1])
	c, err3 := strconv.ParseUint(args[2], 0, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		pterm.Error.Println("platform/encoding must be integers, char must be a rune code")
		return
	}
	cb, ok := sh.f.Builder(font.TagCmap).(*cmap.Builder)
	if !ok {
		pterm.Error.Println("font has no cmap table")
		return
	}
	st, err := cb.Subtable(uint16(pid), uint16(eid))
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	if st == nil {
		pterm.Error.Println("no subtable for that platform/encoding")
		return
	}
	gid := st.GlyphIndex(uint32(c))
	pterm.Println(fmt.Sprintf("glyphId(%#x) = %d", c, gid))
}

func (sh *shell) cmdGlyph(args []string) {
	if len(args) != 1 {
		pterm.Error.Println("usage: glyph <index>")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		pterm.Error.Println("index must be an integer")
		return
	}
	gb, ok := sh.f.Builder(font.TagGlyf).(*glyf.Builder)
	if !ok {
		pterm.Error.Println("font has no glyf table")
		return
	}
	g, err := gb.Glyph(idx)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	switch {
	case g.IsEmpty():
		pterm.Println("empty glyph (no outline)")
	case g.IsComposite():
		pterm.Println(fmt.Sprintf("composite glyph: %d component(s)", len(g.Composite.Components)))
	default:
		pterm.Println(fmt.Sprintf("simple glyph: %d contour(s), %d point(s)",
			len(g.Simple.EndPtsOfContours), len(g.Simple.Points)))
	}
}
