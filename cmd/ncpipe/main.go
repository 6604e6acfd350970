// Command ncpipe builds containers from YAML schemas and inspects their
// encoding configuration.
//
// Usage:
//
//	ncpipe create -config schema.yaml -out file.ncp [-noclobber]
//	ncpipe inspect file.ncp
//	ncpipe filters
//
// The log level is read from LOG_LEVEL (default "info").
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	errs "github.com/bdlm/errors"
	"github.com/bdlm/log"

	"github.com/arloliu/ncpipe"
	nerrs "github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/internal/config"
)

func init() {
	// log level and format
	levelFlag := os.Getenv("LOG_LEVEL")
	if levelFlag == "" {
		levelFlag = "info"
	}
	level, err := log.ParseLevel(levelFlag)
	if err != nil {
		log.WithField("err", err).Warnf("%-v", err)
		level, _ = log.ParseLevel("debug")
	}
	log.SetFormatter(&log.TextFormatter{
		ForceTTY: true,
	})
	log.SetLevel(level)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("%-v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return usageError("missing command")
	}

	switch args[0] {
	case "create":
		return runCreate(args[1:], stderr)
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "filters":
		return runFilters(stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return usageError(fmt.Sprintf("unknown command %q", args[0]))
	}
}

func usageError(msg string) error {
	return errs.Wrap(errors.New(msg), ErrUsage, "invalid command line")
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ncpipe create -config schema.yaml -out file.ncp [-noclobber]")
	fmt.Fprintln(w, "  ncpipe inspect file.ncp")
	fmt.Fprintln(w, "  ncpipe filters")
}

func runCreate(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML schema describing the container")
	out := fs.String("out", "", "path of the container to create")
	noClobber := fs.Bool("noclobber", false, "fail if the output file exists")
	if err := fs.Parse(args); err != nil {
		return errs.Wrap(err, ErrUsage, "invalid create arguments")
	}
	if *configPath == "" || *out == "" {
		fs.Usage()
		return usageError("create needs -config and -out")
	}

	schema, err := config.Load(*configPath)
	if err != nil {
		return errs.Wrap(err, codeFor(err), "failed to load schema")
	}

	opts, err := schema.Options()
	if err != nil {
		return errs.Wrap(err, codeFor(err), "invalid schema options")
	}
	if *noClobber {
		if _, err := os.Lstat(*out); err == nil {
			err = fmt.Errorf("%w: %s", nerrs.ErrExists, *out)
			return errs.Wrap(err, codeFor(err), "failed to create container")
		}
	}

	// The container is built next to out and renamed into place only once it
	// is complete, so a failed create never touches an existing file.
	tmp, err := os.CreateTemp(filepath.Dir(*out), "."+filepath.Base(*out)+".*")
	if err != nil {
		return errs.Wrap(err, codeFor(err), "failed to create container")
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, codeFor(err), "failed to create container")
	}
	defer func() { _ = os.Remove(tmpPath) }()

	c, err := ncpipe.Create(tmpPath, opts...)
	if err != nil {
		return errs.Wrap(err, codeFor(err), "failed to create container")
	}

	ids, err := schema.Apply(c)
	if err != nil {
		return errs.Wrap(err, codeFor(err), "failed to apply schema")
	}

	if err := c.Close(); err != nil {
		return errs.Wrap(err, codeFor(err), "failed to write container")
	}
	if err := os.Rename(tmpPath, *out); err != nil {
		return errs.Wrap(err, codeFor(err), "failed to write container")
	}

	log.WithFields(log.Fields{
		"out":  *out,
		"vars": len(ids),
	}).Info("container created")

	return nil
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return errs.Wrap(err, ErrUsage, "invalid inspect arguments")
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return usageError("inspect needs exactly one file")
	}

	c, err := ncpipe.Open(fs.Arg(0))
	if err != nil {
		return errs.Wrap(err, codeFor(err), "failed to open container")
	}
	defer c.Close()

	schema, err := config.Describe(c)
	if err != nil {
		return errs.Wrap(err, codeFor(err), "failed to describe container")
	}

	data, err := schema.Marshal()
	if err != nil {
		return errs.Wrap(err, ErrUnspecified, "failed to encode schema")
	}

	fmt.Fprintf(stdout, "# %s\n", fs.Arg(0))
	_, err = stdout.Write(data)

	return err
}

func runFilters(stdout io.Writer) error {
	for _, info := range ncpipe.Filters() {
		fmt.Fprintf(stdout, "%6d  %-12s %s\n", info.ID, info.Name, info.Role)
	}

	return nil
}
