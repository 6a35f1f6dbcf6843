// Command sfntdump prints a font file's table directory, checksums, and
// per-table summaries. It is a peripheral CLI tool: everything it needs
// comes through the core font package's public Font/Table API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/naturezhm/sfntly/font"
	"github.com/naturezhm/sfntly/table/cmap"
	"github.com/naturezhm/sfntly/table/glyf"
	"github.com/naturezhm/sfntly/table/head"
	"github.com/naturezhm/sfntly/table/maxp"
	"github.com/naturezhm/sfntly/table/name"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

func tracer() tracing.Trace {
	return tracing.Select("sfntcore.sfntdump")
}

func main() {
	fontPath := flag.String("font", "", "Font file to dump")
	strict := flag.Bool("strict", false, "Set font.Options.StrictMode (no decoder reads it)")
	flag.Parse()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go", "trace.sfntcore.sfntdump": "Info"}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	if *fontPath == "" {
		pterm.Error.Println("usage: sfntdump -font <path>")
		os.Exit(2)
	}
	buf, err := os.ReadFile(*fontPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	ff := font.NewFontFactory(font.Options{StrictMode: *strict})
	f, err := ff.Load(buf)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	dumpFont(f)
}

func dumpFont(f *font.Font) {
	pterm.DefaultSection.Println("Table Directory")
	rows := [][]string{{"Tag", "CheckSum", "Offset", "Length"}}
	for _, t := range f.Tables() {
		h := t.Header()
		rows = append(rows, []string{
			h.Tag.String(),
			fmt.Sprintf("%#08x", h.CheckSum),
			fmt.Sprintf("%d", h.Offset),
			fmt.Sprintf("%d", h.Length),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	pterm.DefaultSection.Println("Table Summaries")
	if hb, ok := f.Builder(font.TagHead).(*head.Builder); ok {
		if m, err := hb.Model(); err == nil {
			pterm.Info.Printf("head: unitsPerEm=%d indexToLocFormat=%d\n", m.UnitsPerEm, m.IndexToLocFormat)
		} else {
			tracer().Errorf("head: %v", err)
		}
	}
	if mb, ok := f.Builder(font.TagMaxp).(*maxp.Builder); ok {
		if m, err := mb.Model(); err == nil {
			pterm.Info.Printf("maxp: numGlyphs=%d\n", m.NumGlyphs)
		} else {
			tracer().Errorf("maxp: %v", err)
		}
	}
	if nb, ok := f.Builder(font.TagName).(*name.Builder); ok {
		if m, err := nb.Model(); err == nil {
			for _, r := range m.ByNameID(name.NameFullFontName) {
				pterm.Info.Printf("name: fullFontName[%d,%d,%d] = %q\n", r.PlatformID, r.EncodingID, r.LanguageID, r.String())
			}
		} else {
			tracer().Errorf("name: %v", err)
		}
	}
	if cb, ok := f.Builder(font.TagCmap).(*cmap.Builder); ok {
		pterm.Info.Printf("cmap: %d encoding record(s)\n", len(cb.EncodingRecords()))
		for _, r := range cb.EncodingRecords() {
			pterm.Println(fmt.Sprintf("  platform=%d encoding=%d offset=%d", r.PlatformID, r.EncodingID, r.Offset))
		}
	}
	if gb, ok := f.Builder(font.TagGlyf).(*glyf.Builder); ok {
		if n, err := gb.NumGlyphs(); err == nil {
			pterm.Info.Printf("glyf: %d glyphs reachable via loca\n", n)
		}
	}
}
