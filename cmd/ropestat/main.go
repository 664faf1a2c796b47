/*
Command ropestat indexes a text file as a rope and reports on it.

Usage:

	ropestat [flags] file

ropestat prints the total metrics and the shape of the rope. Optionally it
lists all chunks, resolves byte offsets to chunks, verifies the rope against
the file's content and writes the tree in Graphviz DOT format.

Configuration is read from a NestedText file at the user's natural
configuration location (e.g. ~/.config/ropestat/config.nt), with keys

	ropemetric.base:      <branching parameter>
	ropemetric.chunksize: <target chunk length in bytes>
	trace.root:           <Error | Info | Debug>

Command line flags override configuration values.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/npillmayer/ropemetric"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

const appTag = "ropestat"

// offsetList is a flag.Value collecting comma-separated byte offsets.
type offsetList []int

func (l *offsetList) String() string {
	s := make([]string, len(*l))
	for i, o := range *l {
		s[i] = strconv.Itoa(o)
	}
	return strings.Join(s, ",")
}

func (l *offsetList) Set(v string) error {
	for _, f := range strings.Split(v, ",") {
		o, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, o)
	}
	return nil
}

type options struct {
	base, chunkSize int
	pos             int64
	gap             int
	fragSize        int64
	isHTML          bool
	listChunks      bool
	verify          bool
	dotFile         string
	trace           string
	search          offsetList
}

func main() {
	opts := options{}
	flag.IntVar(&opts.base, "base", 0, "branching parameter of the tree")
	flag.IntVar(&opts.chunkSize, "chunksize", 0, "target chunk length in bytes")
	flag.Int64Var(&opts.pos, "pos", -1, "initial cursor position; -1 for end of file")
	flag.IntVar(&opts.gap, "gap", 0, "size of the gap at the cursor position")
	flag.Int64Var(&opts.fragSize, "frag", 0, "fragment size for reading the file")
	flag.BoolVar(&opts.isHTML, "html", false, "index the text content of an HTML file")
	flag.BoolVar(&opts.listChunks, "chunks", false, "list all chunks")
	flag.BoolVar(&opts.verify, "verify", false, "verify the rope against the file's content")
	flag.StringVar(&opts.dotFile, "dot", "", "write the tree in DOT format to this file")
	flag.StringVar(&opts.trace, "trace", "", "trace level (Error, Info, Debug)")
	flag.Var(&opts.search, "search", "comma-separated byte offsets to resolve")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file\n", appTag)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), opts); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appTag, err)
		os.Exit(1)
	}
}

func run(name string, opts options) error {
	conf := setupConfig(opts)
	cfg, err := ropemetric.ConfigFrom(conf)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	doc, err := load(ctx, name, opts, cfg)
	if err != nil {
		return err
	}
	tracing.Select("ropemetric").Infof("indexed %q: %v", name, doc.rope.Total())
	r := newReport(os.Stdout)
	r.summary(name, doc)
	if opts.verify {
		r.verification(doc)
	}
	if opts.listChunks {
		r.chunks(doc)
	}
	for _, offset := range opts.search {
		r.search(doc, offset)
	}
	if opts.dotFile != "" {
		f, err := os.Create(opts.dotFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := doc.rope.Dot(f); err != nil {
			return err
		}
	}
	return nil
}

// setupConfig creates the application configuration, overrides it with
// flags explicitly set, and configures tracing from it.
func setupConfig(opts options) *koanfadapter.KConf {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, appTag, []string{"nt"})
	conf.InitDefaults()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base":
			conf.Set(ropemetric.KeyBase, opts.base)
		case "chunksize":
			conf.Set(ropemetric.KeyChunkSize, opts.chunkSize)
		case "trace":
			conf.Set("trace.root", opts.trace)
			conf.Set("trace.ropemetric", opts.trace)
		}
	})
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot configure tracing: %v\n", appTag, err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return conf
}
