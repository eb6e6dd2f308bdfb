package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/HexmosTech/curlform/config"
	"github.com/HexmosTech/curlform/exchange"
	"github.com/HexmosTech/curlform/input"
	"github.com/HexmosTech/curlform/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

// Format selects how a parsed command is shown when it is not sent.
type Format string

const (
	FormatForm Format = "form"
	FormatJSON Format = "json"
	FormatBash Format = "bash"
	FormatCmd  Format = "cmd"
)

type Usage func(w io.Writer)

type OptionSet struct {
	File          string
	Watch         bool
	ReadStdin     bool
	Send          bool
	Format        Format
	Verbose       bool
	PrintVersion  bool
	PrintLicenses bool
	PrintHelp     bool

	ExchangeOptions exchange.Options
	OutputOptions   output.Options
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// Parse reads the command line in args (args[0] is the program name) on top
// of the defaults in cfg. It returns the positional arguments.
func Parse(args []string, cfg *config.Config) ([]string, Usage, *OptionSet, error) {
	return parse(args, cfg, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, cfg *config.Config, terminalInfo terminalInfo) ([]string, Usage, *OptionSet, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	optionSet := &OptionSet{}
	outputOptions := &optionSet.OutputOptions
	exchangeOptions := &optionSet.ExchangeOptions

	var ignoreStdin bool
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	if cfg.Print != "" {
		printFlag = cfg.Print
	}
	timeout := "30s"
	if cfg.Timeout != "" {
		timeout = cfg.Timeout
	}
	verifyFlag := "yes"
	if cfg.Verify != nil && !*cfg.Verify {
		verifyFlag = "no"
	}
	if cfg.Follow != nil {
		exchangeOptions.FollowRedirects = *cfg.Follow
	}
	if cfg.HTTP1 != nil {
		exchangeOptions.ForceHTTP1 = *cfg.HTTP1
	}
	format := string(FormatForm)
	if cfg.Format != "" {
		format = cfg.Format
	}
	color := "auto"
	if cfg.Color != "" {
		color = cfg.Color
	}
	var authFlag string

	flagSet := getopt.New()
	flagSet.SetParameters("[CURL COMMAND...]")
	flagSet.StringVarLong(&optionSet.File, "file", 'f', "read the curl command from FILE", "FILE")
	flagSet.BoolVarLong(&optionSet.Watch, "watch", 'w', "re-parse --file every time it changes")
	flagSet.BoolVarLong(&optionSet.Send, "send", 's', "send the parsed request")
	flagSet.StringVarLong(&format, "format", 0, "how to show the parsed command: form, json, bash or cmd", "FORMAT")
	flagSet.StringVarLong(&printFlag, "print", 'p', "what to print when sending (HBhb)", "WHAT")
	flagSet.StringVarLong(&timeout, "timeout", 0, "timeout seconds that you allow the whole operation to take", "SECONDS")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow 30x Location redirects")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "set to \"no\" to skip checking the host's SSL certificate", "yes|no")
	flagSet.BoolVarLong(&exchangeOptions.ForceHTTP1, "http1", 0, "force HTTP/1.1 protocol")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "colon-separated username and password for basic authentication", "USER[:PASS]")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 'o', "save the response body to FILE", "FILE")
	flagSet.BoolVarLong(&outputOptions.Download, "download", 'D', "save the response body to a file named after the URL")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite an existing file when saving the response body")
	flagSet.StringVarLong(&color, "color", 0, "colorize output: auto, always or never", "WHEN")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.BoolVarLong(&optionSet.Verbose, "verbose", 'v', "log what is going on to stderr")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicenses, "licenses", 0, "print license information and exit")
	flagSet.BoolVarLong(&optionSet.PrintHelp, "help", 'h', "print this help and exit")
	usage := Usage(flagSet.PrintUsage)

	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, usage, nil, input.NewUsageError(err.Error())
	}

	// Check stdin
	if !ignoreStdin && !terminalInfo.stdinIsTerminal {
		optionSet.ReadStdin = true
	}

	// Parse --format
	switch Format(format) {
	case FormatForm, FormatJSON, FormatBash, FormatCmd:
		optionSet.Format = Format(format)
	default:
		return nil, usage, nil, input.NewUsageError("--format must be one of form, json, bash, cmd: " + format)
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, terminalInfo.stdoutIsTerminal, outputOptions); err != nil {
		return nil, usage, nil, err
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, usage, nil, err
	}
	exchangeOptions.Timeout = d

	// Parse --verify
	switch strings.ToLower(verifyFlag) {
	case "no", "false":
		exchangeOptions.SkipVerify = true
	case "yes", "true":
		exchangeOptions.SkipVerify = false
	default:
		return nil, usage, nil, errors.Errorf("Value of --verify must be yes or no: %s", verifyFlag)
	}

	// Parse --auth
	if authFlag != "" {
		auth, err := parseAuth(authFlag, askPassword)
		if err != nil {
			return nil, usage, nil, err
		}
		exchangeOptions.Auth = auth
	}

	// Color
	switch color {
	case "always":
		outputOptions.EnableColor = true
		outputOptions.EnableFormat = true
	case "never":
		outputOptions.EnableColor = false
		outputOptions.EnableFormat = terminalInfo.stdoutIsTerminal
	case "auto":
		outputOptions.EnableColor = terminalInfo.stdoutIsTerminal
		outputOptions.EnableFormat = terminalInfo.stdoutIsTerminal
	default:
		return nil, usage, nil, input.NewUsageError("--color must be one of auto, always, never: " + color)
	}

	if outputOptions.OutputFile != "" {
		outputOptions.Download = true
	}

	if optionSet.Watch && optionSet.File == "" {
		return nil, usage, nil, input.NewUsageError("--watch needs --file")
	}
	if optionSet.Watch && optionSet.Send {
		return nil, usage, nil, input.NewUsageError("--watch cannot be combined with --send")
	}

	return flagSet.Args(), usage, optionSet, nil
}

func parsePrintFlag(printFlag string, stdoutIsTerminal bool, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		if stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of HBhb): %c", c)
		}
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseAuth(authFlag string, ask func(userName string) (string, error)) (exchange.AuthOptions, error) {
	userName, password, hasPassword := strings.Cut(authFlag, ":")
	if userName == "" {
		return exchange.AuthOptions{}, errors.Errorf("--auth needs a user name: %s", authFlag)
	}
	if !hasPassword {
		p, err := ask(userName)
		if err != nil {
			return exchange.AuthOptions{}, err
		}
		password = p
	}
	return exchange.AuthOptions{
		Enabled:  true,
		UserName: userName,
		Password: password,
	}, nil
}
