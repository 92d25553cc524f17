// Package compiler drives the whole pipeline for a set of schema files:
// parse, transform, and render each one for every requested target.
//
// Sources are independent compilation units and compile concurrently.
// Nothing is written until every unit has compiled, so a failure never
// leaves a partial set of outputs behind.
package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/backend"
	"github.com/datawire/adaptive/internal/config"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/parser"
	"github.com/datawire/adaptive/internal/transform"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("adaptive.compiler")

// Destination pairs a target language with its output directory.
type Destination struct {
	Target string
	Dir    string
}

type Option interface {
	apply(*Options)
}

type option func(*Options)

func (f option) apply(opts *Options) { f(opts) }

type Options struct {
	Mode            transform.Mode
	Destinations    []Destination
	Indent          string
	NoReference     bool
	ImplicitService bool
	Registry        transform.Registry
}

func WithMode(mode transform.Mode) Option {
	return option(func(opts *Options) { opts.Mode = mode })
}

// WithTarget adds an output language. It may be given more than once.
func WithTarget(target, dir string) Option {
	return option(func(opts *Options) {
		opts.Destinations = append(opts.Destinations, Destination{Target: target, Dir: dir})
	})
}

func WithIndent(indent string) Option {
	return option(func(opts *Options) { opts.Indent = indent })
}

// WithoutReference drops the schema echo from generated files.
func WithoutReference() Option {
	return option(func(opts *Options) { opts.NoReference = true })
}

func WithImplicitService() Option {
	return option(func(opts *Options) { opts.ImplicitService = true })
}

// WithRegistry replaces the annotation handlers.
func WithRegistry(r transform.Registry) Option {
	return option(func(opts *Options) { opts.Registry = r })
}

// FromConfig applies every setting of a validated configuration.
func FromConfig(cfg *config.Config) Option {
	return option(func(opts *Options) {
		opts.Mode = cfg.ParsedMode()
		opts.Indent = cfg.Indent
		opts.NoReference = !cfg.ReferenceEnabled()
		opts.ImplicitService = cfg.ImplicitService
		for _, name := range cfg.TargetNames() {
			opts.Destinations = append(opts.Destinations, Destination{Target: name, Dir: cfg.Targets[name]})
		}
	})
}

// Output is one generated file.
type Output struct {
	Module  string
	Mode    transform.Mode
	Target  string
	Path    string
	Content []byte
}

type source struct {
	name string
	text string
}

type Compiler struct {
	opts    Options
	sources []source
}

func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, o := range opts {
		o.apply(&c.opts)
	}
	return c
}

// AddSource adds schema text under a file name used in diagnostics.
func (c *Compiler) AddSource(name, text string) {
	c.sources = append(c.sources, source{name: name, text: text})
}

// AddFile reads a schema file.
func (c *Compiler) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &errors.IOError{Op: "read", Path: path, Err: err}
	}
	c.AddSource(path, string(data))
	return nil
}

// Source returns the text added under name, for rendering diagnostics.
func (c *Compiler) Source(name string) (string, bool) {
	for _, s := range c.sources {
		if s.name == name {
			return s.text, true
		}
	}
	return "", false
}

// Compile runs every source through the pipeline. Outputs are ordered by
// source, then by destination. The first failure is returned and no
// outputs are.
func (c *Compiler) Compile(ctx context.Context) ([]Output, error) {
	for _, d := range c.opts.Destinations {
		if _, err := backend.Lookup(d.Target); err != nil {
			return nil, err
		}
	}

	results := make([][]Output, len(c.sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range c.sources {
		i, src := i, src
		g.Go(func() error {
			out, err := c.compileOne(ctx, src)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("compilation failed: %s", err)
		return nil, err
	}

	var outputs []Output
	for _, r := range results {
		outputs = append(outputs, r...)
	}
	return outputs, nil
}

func (c *Compiler) compileOne(ctx context.Context, src source) ([]Output, error) {
	log.Debugf("parsing %s", src.name)
	m, err := parser.Parse(src.name, src.text)
	if err != nil {
		return nil, err
	}

	out, err := transform.Run(m, transform.Options{
		Mode:            c.opts.Mode,
		ImplicitService: c.opts.ImplicitService,
		Registry:        c.opts.Registry,
	})
	if err != nil {
		return nil, err
	}

	var outputs []Output
	for _, d := range c.opts.Destinations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o, err := c.render(out, d)
		if err != nil {
			return nil, err
		}
		log.Infof("generated %s", o.Path)
		outputs = append(outputs, o)
	}
	return outputs, nil
}

func (c *Compiler) render(m *ast.Module, d Destination) (Output, error) {
	// Lookup returns a fresh target, so concurrent units never share one.
	tgt, err := backend.Lookup(d.Target)
	if err != nil {
		return Output{}, err
	}
	content, err := backend.GenerateWith(m, tgt, c.opts.Mode, backend.Options{
		Indent: c.opts.Indent,
		NoRef:  c.opts.NoReference,
	})
	if err != nil {
		return Output{}, err
	}
	return Output{
		Module:  m.Name,
		Mode:    c.opts.Mode,
		Target:  d.Target,
		Path:    filepath.Join(d.Dir, FileName(m.Name, c.opts.Mode, tgt.Extension())),
		Content: content,
	}, nil
}

// FileName is the name of a generated file, e.g. "PetStore_client.py".
func FileName(module string, mode transform.Mode, ext string) string {
	return fmt.Sprintf("%s_%s.%s", module, mode, ext)
}

// WriteOutputs writes every output, replacing existing files atomically.
func WriteOutputs(outputs []Output) error {
	for _, o := range outputs {
		if err := writeFile(o.Path, o.Content); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &errors.IOError{Op: "create", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &errors.IOError{Op: "write", Path: path, Err: err}
	}
	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if err := firstError(writeErr, closeErr, os.Chmod(tmp.Name(), 0o644)); err != nil {
		os.Remove(tmp.Name())
		return &errors.IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &errors.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
