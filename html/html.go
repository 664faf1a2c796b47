/*
Package html indexes the textual content of HTML documents as ropes.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package html

import (
	"fmt"
	"io"

	"github.com/npillmayer/ropemetric"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'ropemetric'
func tracer() tracing.Trace {
	return tracing.Select("ropemetric")
}

// InnerText creates a rope for the textual content of an HTML element and all
// its descendents. The indexed text resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that html.InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents). Content of script and style
// elements is skipped.
//
// The text is the concatenation of all text nodes, in document order; clients
// wanting to relate offsets of the rope to text will have to collect it the
// same way, e.g. with Text.
func InnerText(n *html.Node, cfg ropemetric.Config) (*ropemetric.Rope, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: node is nil", ropemetric.ErrInvalidArgument)
	}
	b, err := ropemetric.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	if err := collectText(n, b); err != nil {
		return nil, err
	}
	return b.Rope()
}

// TextFromHTML creates a rope from the textual content of an HTML fragment.
// It does not interpret layout and styling, but extracts the pure text.
func TextFromHTML(input io.Reader, cfg ropemetric.Config) (*ropemetric.Rope, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		tracer().Errorf("html: cannot parse fragment: %v", err)
		return nil, err
	}
	b, err := ropemetric.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := collectText(n, b); err != nil {
			return nil, err
		}
	}
	return b.Rope()
}

// Text writes the text InnerText indexes for n to w.
func Text(n *html.Node, w io.Writer) error {
	if n == nil {
		return fmt.Errorf("%w: node is nil", ropemetric.ErrInvalidArgument)
	}
	return collectText(n, w)
}

func collectText(n *html.Node, w io.Writer) error {
	switch n.Type {
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return nil
		}
	case html.TextNode:
		if _, err := io.WriteString(w, n.Data); err != nil {
			return err
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectText(c, w); err != nil {
			return err
		}
	}
	return nil
}
