package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"horse.fit/mtran/internal/batchfile"
	"horse.fit/mtran/internal/language"
	"horse.fit/mtran/internal/mtran"
)

type languageFlags struct {
	from   *string
	to     *string
	detect *string
}

func addLanguageFlags(fs *flag.FlagSet) *languageFlags {
	return &languageFlags{
		from:   fs.String("from", language.Auto, "Source language code, or auto"),
		to:     fs.String("to", "", "Target language code"),
		detect: fs.String("detect", "", "Detected source language used when --from is auto"),
	}
}

func (f *languageFlags) validate() error {
	if language.NormalizeTag(*f.to) == "" {
		return fmt.Errorf("--to is required and must be a valid language code")
	}
	if language.NormalizeTag(*f.from) == "" {
		return fmt.Errorf("--from must be a valid language code or auto")
	}
	if strings.TrimSpace(*f.detect) != "" && language.NormalizeTag(*f.detect) == "" {
		return fmt.Errorf("--detect must be a valid language code")
	}
	return nil
}

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	server := addServerFlags(fs, 30*time.Second)
	langs := addLanguageFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := langs.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	text := strings.Join(fs.Args(), " ")
	if fs.NArg() == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			return 1
		}
		text = strings.TrimRight(string(raw), "\r\n")
	}

	sess, err := server.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.close()

	result, err := sess.client.Translate(sess.ctx, sess.server, mtran.TranslateRequest{
		Text:   text,
		From:   *langs.from,
		To:     *langs.to,
		Detect: *langs.detect,
	})
	if err != nil {
		sess.logger.Error().Err(err).Msg("translate failed")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, result)
	return 0
}

func runBatch(args []string) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	server := addServerFlags(fs, 2*time.Minute)
	langs := addLanguageFlags(fs)
	file := fs.String("file", "", "JSON job file with from, to, detect and texts")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var req mtran.BatchTranslateRequest
	if path := strings.TrimSpace(*file); path != "" {
		if fs.NArg() > 0 {
			fmt.Fprintln(os.Stderr, "batch accepts either --file or text arguments, not both")
			return 2
		}
		job, err := batchfile.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid batch file: %v\n", err)
			return 1
		}
		req = job.Request()
	} else {
		if err := langs.validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		req = mtran.BatchTranslateRequest{
			Texts:  fs.Args(),
			From:   *langs.from,
			To:     *langs.to,
			Detect: *langs.detect,
		}
	}

	sess, err := server.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.close()

	results, err := sess.client.BatchTranslate(sess.ctx, sess.server, req)
	if err != nil {
		sess.logger.Error().Err(err).Int("texts", len(req.Texts)).Msg("batch translate failed")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, result := range results {
		fmt.Fprintln(stdout, result)
	}
	return 0
}
