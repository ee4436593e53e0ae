package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

func runModels(args []string) int {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	server := addServerFlags(fs, 30*time.Second)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	sess, err := server.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.close()

	models, err := sess.client.Models(sess.ctx, sess.server)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, model := range models {
		if model.From != "" || model.To != "" {
			fmt.Fprintf(stdout, "%s\t%s->%s\n", model.Name, model.From, model.To)
			continue
		}
		fmt.Fprintln(stdout, model.Name)
	}
	return 0
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	server := addServerFlags(fs, 30*time.Second)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	sess, err := server.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.close()

	version, err := sess.client.Version(sess.ctx, sess.server)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, version)
	return 0
}
