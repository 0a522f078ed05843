// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/creachadair/tomltree/ast"
	"github.com/creachadair/tomltree/ast/cursor"
	"github.com/creachadair/tomltree/tomljson"
	"github.com/creachadair/tomltree/tomlyaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type settings struct {
	Pretty   bool
	YAML     bool
	Path     string
	MaxBytes int
	Verbose  bool
}

// newRootCmd constructs the root command. Documents are read from stdin when
// no paths are given; output and diagnostics go to the command's output and
// error streams.
func newRootCmd(stdin io.Reader) *cobra.Command {
	var cfg settings
	cmd := &cobra.Command{
		Use:   "tomljson [flags] [path ...]",
		Short: "Print the type-tagged JSON projection of TOML documents",
		Long: `Read each named TOML file, or standard input if none are named, and
print its projection as JSON, one document per line. Every scalar is
rendered as {"type":"<kind>","value":"<text>"}.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			defer log.Sync()
			return run(cmd.OutOrStdout(), stdin, args, cfg, log)
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Indent the JSON output")
	fs.BoolVar(&cfg.YAML, "yaml", false, "Print plain YAML instead of tagged JSON")
	fs.StringVar(&cfg.Path, "path", "", `Print only the node at this path (e.g., "server.ports[0]")`)
	fs.IntVar(&cfg.MaxBytes, "max-bytes", 0, "Limit the size of each parsed document (0 means no limit)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log diagnostics to stderr")
	cmd.MarkFlagsMutuallyExclusive("pretty", "yaml")
	return cmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
}

func run(w io.Writer, stdin io.Reader, paths []string, cfg settings, log *zap.Logger) error {
	opts := ast.Options{MaxBytes: cfg.MaxBytes}
	if len(paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		log.Debug("read standard input", zap.Int("bytes", len(data)))
		doc, err := opts.ParseBytes(data)
		if err != nil {
			return err
		}
		return emit(w, doc, cfg, log)
	}
	for _, path := range paths {
		doc, err := opts.ParseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("parsed document", zap.String("path", path), zap.Int("keys", doc.Len()))
		if err := emit(w, doc, cfg, log); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// emit writes the projection of doc to w, followed by a newline.
func emit(w io.Writer, doc *ast.Table, cfg settings, log *zap.Logger) error {
	var n ast.Node = doc
	if cfg.Path != "" {
		var err error
		n, err = cursor.Find(doc, cfg.Path)
		if err != nil {
			return err
		}
		log.Debug("selected node",
			zap.String("path", cfg.Path),
			zap.String("type", fmt.Sprintf("%T", n)),
			zap.Stringer("at", doc.Store().Locate(n.Span().Pos)),
		)
	}

	var buf bytes.Buffer
	if cfg.YAML {
		if err := tomlyaml.EncodeNode(&buf, n); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := tomljson.EncodeNode(&buf, n); err != nil {
		return err
	}
	out := buf.Bytes()
	if cfg.Pretty {
		var err error
		out, err = tomljson.Indent(out)
		if err != nil {
			return err
		}
		out = bytes.TrimRight(out, "\n")
	}
	log.Debug("projected document", zap.Int("bytes", len(out)))
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
