package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	server := addServerFlags(fs, 10*time.Second)

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

	if !sess.client.CheckHealth(sess.ctx, sess.server) {
		fmt.Fprintf(os.Stderr, "Health check failed: %s is not healthy\n", sess.server.APIURL)
		return 1
	}

	sess.logger.Info().Str("api_url", sess.server.APIURL).Msg("translation server health check passed")
	fmt.Fprintln(stdout, "ok: translation server is healthy")
	return 0
}
