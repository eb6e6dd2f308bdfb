package curlform

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"

	"github.com/HexmosTech/curlform/config"
	"github.com/HexmosTech/curlform/exchange"
	"github.com/HexmosTech/curlform/flags"
	"github.com/HexmosTech/curlform/form"
	"github.com/HexmosTech/curlform/input"
	"github.com/HexmosTech/curlform/output"
	"github.com/HexmosTech/curlform/version"
	"github.com/HexmosTech/curlform/watch"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func Main() error {
	return run(os.Args, os.Stdin, os.Stdout, os.Stderr)
}

func run(osArgs []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// A broken config file is reported after --help and --version had
	// their chance to run.
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = &config.Config{}
	}

	// Parse flags
	args, usage, optionSet, err := flags.Parse(osArgs, cfg)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage(stderr)
		return err
	}
	if err != nil {
		return err
	}
	setupLogging(stderr, optionSet.Verbose)

	switch {
	case optionSet.PrintHelp:
		usage(stdout)
		return nil
	case optionSet.PrintVersion:
		fmt.Fprintf(stdout, "curlform %s\n", version.Current())
		return nil
	case optionSet.PrintLicenses:
		version.PrintLicenses(stdout)
		return nil
	}
	if cfgErr != nil {
		return cfgErr
	}
	if path, _ := config.DefaultPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			logrus.WithField("path", path).Debug("loaded config")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	printer := output.NewPrinter(writer, &optionSet.OutputOptions)

	if optionSet.Watch {
		return runWatch(ctx, optionSet, writer, printer)
	}

	raw, err := readCommand(args, optionSet, stdin)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage(stderr)
		return err
	}
	if err != nil {
		return err
	}

	f := form.New()
	if err := f.Update(raw); err != nil {
		return err
	}
	if !optionSet.Send {
		return render(writer, printer, f.Request(), optionSet.Format)
	}
	return send(ctx, writer, printer, f.Request(), optionSet)
}

func setupLogging(w io.Writer, verbose bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// readCommand takes the command from --file, the positional arguments or
// stdin, in that order.
func readCommand(args []string, optionSet *flags.OptionSet, stdin io.Reader) (string, error) {
	switch {
	case optionSet.File != "":
		b, err := ioutil.ReadFile(optionSet.File)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", optionSet.File)
		}
		return string(b), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case optionSet.ReadStdin:
		b, err := ioutil.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(b), nil
	default:
		return "", input.NewUsageError("a curl command is required")
	}
}

func render(w io.Writer, printer output.Printer, req *input.Request, format flags.Format) error {
	switch format {
	case flags.FormatJSON:
		return output.WriteJSON(w, req)
	case flags.FormatBash, flags.FormatCmd:
		dialect := input.Bash
		if format == flags.FormatCmd {
			dialect = input.WindowsCmd
		}
		cmd, err := input.FormatCommand(req, input.FormatOptions{Dialect: dialect, Multiline: true})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, cmd)
		return nil
	default:
		return printer.PrintForm(req)
	}
}

// runWatch re-renders the form every time the command file changes. A
// command that fails to parse shows the error above the previous values.
func runWatch(ctx context.Context, optionSet *flags.OptionSet, writer *bufio.Writer, printer output.Printer) error {
	f := form.New()
	first := true
	return watch.File(ctx, optionSet.File, func(content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		defer writer.Flush()
		if !first {
			fmt.Fprintln(writer)
		}
		first = false

		if err := f.Update(content); err != nil {
			printer.PrintError(err)
			if !f.Ready() {
				return
			}
		}
		if err := render(writer, printer, f.Request(), optionSet.Format); err != nil {
			printer.PrintError(err)
		}
	})
}

func send(ctx context.Context, writer *bufio.Writer, printer output.Printer, req *input.Request, optionSet *flags.OptionSet) error {
	outputOptions := &optionSet.OutputOptions
	exchangeOptions := &optionSet.ExchangeOptions

	r, err := exchange.BuildHTTPRequest(ctx, req, exchangeOptions)
	if err != nil {
		return err
	}

	// Print HTTP request
	if outputOptions.PrintRequestHeader {
		if err := printer.PrintRequestLine(r); err != nil {
			return err
		}
		if err := printer.PrintHeader(r.Header); err != nil {
			return err
		}
	}
	if outputOptions.PrintRequestBody && r.Body != nil {
		if err := printer.PrintBody(strings.NewReader(req.Body), r.Header.Get("Content-Type")); err != nil {
			return err
		}
		fmt.Fprintf(writer, "\n\n")
	}
	writer.Flush()

	client, err := exchange.BuildHTTPClient(exchangeOptions)
	if err != nil {
		return err
	}
	resp, err := exchange.SendRequest(client, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Print HTTP response
	if outputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		writer.Flush()
	}
	if outputOptions.Download {
		fileWriter := output.NewFileWriter(r.URL, outputOptions, os.Stderr)
		if err := fileWriter.Download(resp); err != nil {
			return err
		}
	} else if outputOptions.PrintResponseBody {
		if err := printer.PrintBody(resp.Body, resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}

	return exchange.CheckStatus(resp)
}
