// Package generate runs one generation pass: scan, derive identities,
// render and then write or verify the artifacts.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fulmenhq/tonegen/internal/emit"
	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/fulmenhq/tonegen/internal/render"
	"github.com/fulmenhq/tonegen/pkg/config"
	"github.com/fulmenhq/tonegen/pkg/logger"
)

// Options selects how a run finishes
type Options struct {
	// Check compares artifacts with the files on disk instead of writing.
	Check bool
	// DryRun prints artifacts to Out instead of writing.
	DryRun bool
	// Out receives the asset table and dry-run output. Nil discards it.
	Out io.Writer
}

// Result describes a finished run
type Result struct {
	Manifest  *manifest.Manifest
	Artifacts render.Artifacts
	Files     []emit.File
	// Stale lists outdated paths in check mode.
	Stale   []string
	Written bool
}

// StaleError is returned in check mode when artifacts on disk are outdated.
type StaleError struct {
	Paths []string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("generated artifacts are out of date: %s", strings.Join(e.Paths, ", "))
}

// IsStaleError reports whether err wraps a StaleError.
func IsStaleError(err error) bool {
	var target *StaleError
	return errors.As(err, &target)
}

// ManifestOptions maps configuration onto discovery and naming settings.
func ManifestOptions(cfg *config.Config) manifest.Options {
	return manifest.Options{
		Discover: manifest.DiscoverOptions{
			Extensions: cfg.Scan.Extensions,
			Exclude:    cfg.Scan.Exclude,
			IgnoreFile: cfg.Scan.IgnoreFile,
		},
		Naming: manifest.Naming{
			EnumPrefix: cfg.Naming.EnumPrefix,
			URLScheme:  cfg.Naming.URLScheme,
			LinkPrefix: cfg.Naming.LinkPrefix,
			LinkSuffix: cfg.Naming.LinkSuffix,
		},
	}
}

// RenderOptions maps configuration onto renderer settings.
func RenderOptions(cfg *config.Config) render.Options {
	return render.Options{
		StructType:    cfg.Naming.StructType,
		Array:         cfg.Naming.Array,
		EnumType:      cfg.Naming.EnumType,
		SentinelLabel: cfg.Naming.SentinelLabel(),
		URLArray:      cfg.Naming.URLArray,
		Directive:     cfg.Naming.CMakeDirective,
		Copyright:     cfg.Render.Copyright,
		License:       cfg.Render.License,
		Align:         cfg.Render.Align,
		LineEnding:    cfg.LineEnding(),
	}
}

// Emitter returns the emitter for assets in dir.
func Emitter(dir string, cfg *config.Config) *emit.Emitter {
	return &emit.Emitter{
		Dir:          cfg.OutputDir(dir),
		HeaderName:   cfg.Output.Header,
		FileListName: cfg.Output.FileList,
	}
}

// Run generates artifacts for the assets in dir. Any failure aborts the
// whole run; either both files are replaced or neither is.
func Run(ctx context.Context, dir string, cfg *config.Config, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	m, err := manifest.Build(dir, ManifestOptions(cfg))
	if err != nil {
		return nil, err
	}
	logger.Info("Discovered assets",
		logger.String("dir", dir),
		logger.Int("count", m.Len()),
		logger.Int64("bytes", m.TotalSize()),
		logger.String("total", humanize.IBytes(uint64(m.TotalSize())))) // #nosec G115 -- sum of non-negative sizes
	if _, err := fmt.Fprintln(out, AssetTable(m)); err != nil {
		return nil, err
	}

	r, err := render.New(RenderOptions(cfg))
	if err != nil {
		return nil, err
	}
	art := r.Render(m)

	em := Emitter(dir, cfg)
	res := &Result{Manifest: m, Artifacts: art, Files: em.Files(art)}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case opts.DryRun:
		for _, f := range res.Files {
			if _, err := fmt.Fprintf(out, "==> %s <==\n%s", f.Path, f.Data); err != nil {
				return nil, err
			}
		}
		return res, nil

	case opts.Check:
		stale, err := em.Check(art)
		if err != nil {
			return nil, err
		}
		res.Stale = stale
		if len(stale) > 0 {
			return res, &StaleError{Paths: stale}
		}
		logger.Info("Generated artifacts are up to date", logger.Int("files", len(res.Files)))
		return res, nil
	}

	if err := em.Write(art); err != nil {
		return nil, err
	}
	res.Written = true
	for _, f := range res.Files {
		logger.Info("Wrote artifact", logger.String("path", f.Path), logger.Int64("bytes", int64(len(f.Data))))
	}
	return res, nil
}
