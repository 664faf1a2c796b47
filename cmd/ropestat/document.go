package main

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/npillmayer/ropemetric"
	"github.com/npillmayer/ropemetric/html"
	"github.com/npillmayer/ropemetric/textfile"
	xhtml "golang.org/x/net/html"
)

// document is a rope together with the buffer it indexes.
type document struct {
	rope             *ropemetric.Rope
	buf              []byte
	gapStart, gapEnd int
}

func load(ctx context.Context, name string, opts options, cfg ropemetric.Config) (*document, error) {
	if opts.isHTML {
		return loadHTML(name, cfg)
	}
	rope, err := textfile.Load(ctx, name, opts.pos, opts.gap, opts.fragSize, cfg)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	start, end := rope.Gap()
	buf := make([]byte, 0, len(content)+end-start)
	buf = append(buf, content[:start]...)
	buf = append(buf, bytes.Repeat([]byte{' '}, end-start)...)
	buf = append(buf, content[start:]...)
	return &document{rope: rope, buf: buf, gapStart: start, gapEnd: end}, nil
}

func loadHTML(name string, cfg ropemetric.Config) (*document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := xhtml.Parse(f)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := html.Text(root, &sb); err != nil {
		return nil, err
	}
	rope, err := html.InnerText(root, cfg)
	if err != nil {
		return nil, err
	}
	start, end := rope.Gap()
	return &document{rope: rope, buf: []byte(sb.String()), gapStart: start, gapEnd: end}, nil
}
