package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/llehouerou/tides/internal/render"
)

type LsCmd struct {
	Path string `arg:"" optional:"" help:"Directory to list. Lists the root when omitted."`
}

func (c *LsCmd) Run(env *Env) error {
	entries, err := env.Client.ListInfo(trimPath(c.Path))
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(render.Sanitize(e.Path) + "\n")
	}
	_, err = fmt.Fprint(env.Out, b.String())
	return err
}

type SearchCmd struct {
	Query []string `arg:"" help:"A single filter expression, or a sequence of tag/value pairs."`
}

func (c *SearchCmd) Run(env *Env) error {
	songs, err := env.Client.Search(c.Query...)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, s := range songs {
		b.WriteString(render.Sanitize(s.File) + "\n")
	}
	_, err = fmt.Fprint(env.Out, b.String())
	return err
}

type ListCmd struct {
	Tag   string   `arg:"" help:"Tag to list values of."`
	Query []string `arg:"" optional:"" help:"A single filter expression, or a sequence of tag/value pairs."`
}

func (c *ListCmd) Run(env *Env) error {
	values, err := env.Client.List(c.Tag, c.Query...)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteString(render.Sanitize(v) + "\n")
	}
	_, err = fmt.Fprint(env.Out, b.String())
	return err
}

type UpdateCmd struct {
	Path string `arg:"" optional:"" help:"Only update this directory."`
}

func (c *UpdateCmd) Run(env *Env) error {
	job, err := env.Client.Update(trimPath(c.Path))
	if err != nil {
		return err
	}
	slog.Debug("database update started", "job", job)
	return nil
}

type ReadCommentsCmd struct {
	File  string `arg:"" help:"File to read tags from."`
	Plain bool   `short:"p" help:"Print key=value lines without formatting."`
}

func (c *ReadCommentsCmd) Run(env *Env) error {
	comments, err := env.Client.ReadComments(trimPath(c.File))
	if err != nil {
		return err
	}

	rows := make([]render.Row, 0, len(comments))
	for _, t := range comments {
		rows = append(rows, render.Row{Key: t.Key, Value: t.Value})
	}
	return env.printer(c.Plain).Table(rows)
}

type TabCmd struct {
	Path string `arg:"" optional:"" help:"Path prefix to complete."`
}

// Run lists the entries of the prefix's directory that start with the
// prefix.
func (c *TabCmd) Run(env *Env) error {
	dir := ""
	if i := strings.LastIndex(c.Path, "/"); i >= 0 {
		dir = c.Path[:i]
	}

	entries, err := env.Client.ListInfo(dir)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		if strings.HasPrefix(e.Path, c.Path) {
			b.WriteString(e.Path + "\n")
		}
	}
	_, err = fmt.Fprint(env.Out, b.String())
	return err
}
