package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/image-to-plot/internal/config"
	"github.com/ironsheep/image-to-plot/internal/convert"
	"github.com/ironsheep/image-to-plot/internal/imaging"
	"github.com/ironsheep/image-to-plot/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := "convert"
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			printVersion(stdout)
			return exitOK
		case "--help", "-h", "help":
			printHelp(stdout)
			return exitOK
		case "convert", "icon", "serve":
			cmd, args = args[0], args[1:]
		}
	}

	switch cmd {
	case "icon":
		return runIcon(args, stdout, stderr)
	case "serve":
		return runServe(args, stderr)
	default:
		return runConvert(args, stdout, stderr)
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "image-to-plot %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "image-to-plot - turn an image into a Python script that draws it")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-to-plot [convert] [--image PATH] [--out FILE] [--mode sketch|color] [--max-size N]")
	fmt.Fprintln(w, "  image-to-plot icon --image SRC [--out DST] [--size N] [--from-ico]")
	fmt.Fprintln(w, "  image-to-plot serve")
	fmt.Fprintln(w, "  image-to-plot version | help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "If --image is omitted, the newest image in the current folder is used.")
	fmt.Fprintln(w, "Sketch mode draws edge points (default size 160); color mode draws every")
	fmt.Fprintln(w, "pixel (default size 80 unless --max-size is given).")
	fmt.Fprintln(w, "Run 'image-to-plot convert -h' or 'image-to-plot icon -h' for all flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug       Log level (debug, info, warn, error)\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s=80     Color mode size when --max-size is not given\n", config.EnvColorMaxSize)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'serve' speaks MCP (JSON-RPC 2.0) over stdin/stdout.")
}

// newLogger builds a console logger on stderr; stdout carries user output
// and MCP frames.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func runConvert(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return exitError
	}
	defer logger.Sync() //nolint:errcheck

	imagePath := cfg.Image
	if imagePath == "" {
		imagePath, err = imaging.FindLatest(".")
		if err != nil {
			fmt.Fprintf(stderr, "No input image: %v\n", err)
			return exitError
		}
	}
	if fi, err := os.Stat(imagePath); err != nil || !fi.Mode().IsRegular() {
		fmt.Fprintf(stderr, "Input image not found: %s\n", imagePath)
		return exitError
	}

	fmt.Fprintf(stdout, "Using image: %s\n", imagePath)

	outcome, err := convert.Run(logger, convert.Request{
		Mode:         cfg.Mode,
		ImagePath:    imagePath,
		MaxSize:      cfg.SizeFor(cfg.Mode),
		Filter:       cfg.Filter,
		Out:          cfg.Out,
		PreviewPath:  cfg.Preview,
		PreviewScale: cfg.PreviewScale,
	})
	if err != nil {
		logger.Error("conversion failed", zap.String("image", imagePath), zap.Error(err))
		return exitError
	}

	fmt.Fprintf(stdout, "Generated %s code with %d points (%dx%d)\n",
		outcome.Result.Mode, outcome.Result.Len(), outcome.Result.Width, outcome.Result.Height)
	fmt.Fprintf(stdout, "Generated Python file: %s\n", outcome.OutPath)
	if outcome.PreviewPath != "" {
		fmt.Fprintf(stdout, "Preview image: %s\n", outcome.PreviewPath)
	}
	return exitOK
}

func runIcon(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseIcon(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	var res *imaging.IconResult
	if cfg.FromICO {
		res, err = imaging.IconToPNG(cfg.Image, cfg.Out)
	} else {
		res, err = imaging.WriteIcon(cfg.Image, cfg.Out, cfg.Size)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Icon conversion failed: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stdout, "Saved %dx%d %s: %s\n", res.Width, res.Height, res.Format, res.OutPath)
	return exitOK
}

func runServe(args []string, stderr io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(stderr, "serve takes no arguments, got %v\n", args)
		return exitUsage
	}

	cfg := config.Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to create logger: %v\n", err)
		return exitError
	}
	defer logger.Sync() //nolint:errcheck

	logger.Debug("starting MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit))

	srv := server.New(logger, Version)
	if err := srv.Run(); err != nil {
		logger.Error("server error", zap.Error(err))
		return exitError
	}
	return exitOK
}
