package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/midbel/cli"
	"github.com/midbel/xlgrid/grid"
	"github.com/midbel/xlgrid/oxml"
	"github.com/midbel/xlgrid/render"
)

var (
	summary = "xlgrid"
	help    = ""
)

func main() {
	var (
		set  = cli.NewFlagSet("xlgrid")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"info"}, &infoCmd)
	root.Register([]string{"print"}, &printCmd)
	root.Register([]string{"extract"}, &extractCmd)
	return root
}

var infoCmd = cli.Command{
	Name:    "info",
	Summary: "list the sheets of the given file",
	Usage:   "info <spreadsheet>",
	Handler: &GetInfoCommand{},
}

var printCmd = cli.Command{
	Name:    "print",
	Alias:   []string{"view", "show"},
	Summary: "render a sheet as a styled table",
	Usage:   "print [-s sheet] [-no-font] [-no-fill] [-no-border] [-no-align] [-no-numfmt] <spreadsheet>",
	Handler: &PrintSheetCommand{},
}

var extractCmd = cli.Command{
	Name:    "extract",
	Alias:   []string{"export"},
	Summary: "extract a sheet to csv or json",
	Usage:   "extract [-s sheet] [-f format] [-o file] <spreadsheet>",
	Handler: &ExtractSheetCommand{},
}

// styleToggles holds the flags disabling a style category on the
// extracted grid.
type styleToggles struct {
	NoFont   bool
	NoFill   bool
	NoBorder bool
	NoAlign  bool
	NoNumFmt bool
}

func (t *styleToggles) register(set *flag.FlagSet) {
	set.BoolVar(&t.NoFont, "no-font", false, "skip font styling")
	set.BoolVar(&t.NoFill, "no-fill", false, "skip cell background")
	set.BoolVar(&t.NoBorder, "no-border", false, "skip cell borders")
	set.BoolVar(&t.NoAlign, "no-align", false, "skip cell alignment")
	set.BoolVar(&t.NoNumFmt, "no-numfmt", false, "skip number formats")
}

func (t styleToggles) apply(opts *oxml.Options) {
	opts.Font = !t.NoFont
	opts.Fill = !t.NoFill
	opts.Stroke = !t.NoBorder
	opts.Alignment = !t.NoAlign
	opts.TableStyle = !t.NoNumFmt
}

type GetInfoCommand struct{}

func (c GetInfoCommand) Run(args []string) error {
	set := cli.NewFlagSet("info")
	if err := set.Parse(args); err != nil {
		return err
	}
	data, err := os.ReadFile(set.Arg(0))
	if err != nil {
		return err
	}
	doc, err := oxml.ReadDocument(data, oxml.DefaultOptions())
	if err != nil {
		return err
	}
	for _, s := range doc.Sheets() {
		fmt.Fprintf(os.Stdout, "%d %s (%s)", s.Index, s.Name, s.Target)
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

type PrintSheetCommand struct {
	Options oxml.Options
	Toggles styleToggles
}

func (c PrintSheetCommand) Run(args []string) error {
	c.Options = oxml.DefaultOptions()
	set := cli.NewFlagSet("print")
	set.IntVar(&c.Options.Sheet, "s", 0, "sheet index")
	c.Toggles.register(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	c.Toggles.apply(&c.Options)
	g, err := oxml.ExtractFile(set.Arg(0), c.Options)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, render.Table(g))
	return nil
}

type ExtractSheetCommand struct {
	Options oxml.Options
	Toggles styleToggles
	Format  string
	OutFile string
}

func (c ExtractSheetCommand) Run(args []string) error {
	c.Options = oxml.DefaultOptions()
	set := cli.NewFlagSet("extract")
	set.IntVar(&c.Options.Sheet, "s", 0, "sheet index")
	set.StringVar(&c.Format, "f", "csv", "extract to given format (csv, json)")
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	c.Toggles.register(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	c.Toggles.apply(&c.Options)
	var encode func(io.Writer) grid.Encoder
	switch c.Format {
	case "", "csv":
		encode = oxml.EncodeCSV
	case "json":
		encode = oxml.EncodeJSON
	default:
		return fmt.Errorf("%s: unsupported format", c.Format)
	}
	g, err := oxml.ExtractFile(set.Arg(0), c.Options)
	if err != nil {
		return err
	}
	w := os.Stdout
	if c.OutFile != "" {
		w, err = os.Create(c.OutFile)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	return g.Encode(encode(w))
}
