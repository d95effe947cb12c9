// soupfind searches tree-shaped documents (HTML, XML, JSON, YAML, HCL) with
// CSS-like selectors and prints the matches.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/pourover/soup"
	"github.com/pourover/soup/backend/hcldoc"
	"github.com/pourover/soup/backend/htmldoc"
	"github.com/pourover/soup/backend/jsondoc"
	"github.com/pourover/soup/backend/xmldoc"
	"github.com/pourover/soup/backend/yamldoc"
	"github.com/pourover/soup/selector"
)

type options struct {
	format   string
	limit    int
	children bool
	text     bool
	attr     string
}

func newCommand(fsys billy.Filesystem, out io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "soupfind SELECTOR FILE...",
		Short:        "Search tree-shaped documents with CSS-like selectors",
		Example:      `  soupfind 'div.item > a[href~="^https"]' page.html`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(fsys, out, opts, args[0], args[1:])
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: html, html-strict, xml, json, yaml, hcl (default: by extension)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", soup.NoLimit, "stop after this many matches per file")
	cmd.Flags().BoolVar(&opts.children, "children", false, "match only the document's immediate children")
	cmd.Flags().BoolVarP(&opts.text, "text", "t", false, "print each match's text instead of its markup")
	cmd.Flags().StringVarP(&opts.attr, "attr", "a", "", "print this attribute of each match")
	return cmd
}

func run(fsys billy.Filesystem, out io.Writer, opts *options, expr string, paths []string) error {
	sel, err := selector.Parse(expr)
	if err != nil {
		return err
	}
	q := soup.Query{Scope: soup.ScopeRecursive, Limit: opts.limit}
	if opts.children {
		q.Scope = soup.ScopeChildren
	}

	for _, path := range paths {
		data, err := util.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := parseFile(opts.format, path, data)
		if err != nil {
			return err
		}
		ms, err := doc.FindWith(sel, q)
		if err != nil {
			return err
		}
		for i := 0; i < ms.Len(); i++ {
			fmt.Fprintln(out, render(ms.At(i), opts))
		}
	}
	return nil
}

func parseFile(format, path string, data []byte) (*soup.Soup, error) {
	if format == "" {
		format = formatForExt(filepath.Ext(path))
	}
	switch format {
	case "html":
		return htmldoc.Parse(string(data))
	case "html-strict":
		return htmldoc.ParseStrict(string(data))
	case "xml":
		return xmldoc.ParseString(string(data))
	case "json":
		return jsondoc.Parse(data)
	case "yaml":
		return yamldoc.Parse(data)
	case "hcl":
		return hcldoc.Parse(path, data)
	default:
		return nil, fmt.Errorf("unknown format %q (use --format)", format)
	}
}

func formatForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return "html"
	case ".xml":
		return "xml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".hcl", ".tf":
		return "hcl"
	default:
		return ""
	}
}

func render(n soup.Node, opts *options) string {
	if opts.attr != "" {
		v, _ := n.Attr(opts.attr)
		return v
	}
	if opts.text {
		return strings.TrimSpace(soup.AllText(n))
	}
	tag, ok := n.Tag()
	if !ok {
		t, _ := n.Text()
		return strings.TrimSpace(t)
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(tag)
	for _, a := range n.Attrs() {
		fmt.Fprintf(&sb, " %s=%q", a.Name, a.Value)
	}
	sb.WriteByte('>')
	if t := strings.TrimSpace(soup.AllText(n)); t != "" {
		sb.WriteByte(' ')
		sb.WriteString(snippet(t, 60))
	}
	return sb.String()
}

func snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func main() {
	cmd := newCommand(osfs.New("."), os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "soupfind:", err)
		os.Exit(1)
	}
}
