package flags

import (
	"reflect"
	"testing"
	"time"

	"github.com/HexmosTech/curlform/config"
	"github.com/HexmosTech/curlform/exchange"
	"github.com/HexmosTech/curlform/input"
	"github.com/HexmosTech/curlform/output"
	"github.com/pkg/errors"
)

var interactive = terminalInfo{
	stdinIsTerminal:  true,
	stdoutIsTerminal: true,
}

func TestParse(t *testing.T) {
	args, _, optionSet, err := parse([]string{}, nil, interactive)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	var expectedArgs []string
	if !reflect.DeepEqual(expectedArgs, args) {
		t.Errorf("unexpected returned args: expected=%v, actual=%v", expectedArgs, args)
	}
	expectedOptionSet := &OptionSet{
		Format: FormatForm,
		ExchangeOptions: exchange.Options{
			Timeout: 30 * time.Second,
		},
		OutputOptions: output.Options{
			PrintResponseHeader: true,
			PrintResponseBody:   true,
			EnableFormat:        true,
			EnableColor:         true,
		},
	}
	if !reflect.DeepEqual(expectedOptionSet, optionSet) {
		t.Errorf("unexpected option set: expected=\n%+v\nactual=\n%+v", expectedOptionSet, optionSet)
	}
}

func TestParse_Flags(t *testing.T) {
	args, _, optionSet, err := parse([]string{
		"curlform",
		"--send", "--print=HBhb", "--timeout", "2.5", "-F", "--verify=no", "--http1",
		"--auth", "alice:open sesame", "-o", "out.json", "--color=never", "--format=json",
		"curl", "http://a.test",
	}, nil, terminalInfo{stdinIsTerminal: false, stdoutIsTerminal: false})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	expectedArgs := []string{"curl", "http://a.test"}
	if !reflect.DeepEqual(expectedArgs, args) {
		t.Errorf("unexpected returned args: expected=%v, actual=%v", expectedArgs, args)
	}
	expectedOptionSet := &OptionSet{
		ReadStdin: true,
		Send:      true,
		Format:    FormatJSON,
		ExchangeOptions: exchange.Options{
			Timeout:         2500 * time.Millisecond,
			FollowRedirects: true,
			SkipVerify:      true,
			ForceHTTP1:      true,
			Auth: exchange.AuthOptions{
				Enabled:  true,
				UserName: "alice",
				Password: "open sesame",
			},
		},
		OutputOptions: output.Options{
			PrintRequestHeader:  true,
			PrintRequestBody:    true,
			PrintResponseHeader: true,
			PrintResponseBody:   true,
			Download:            true,
			OutputFile:          "out.json",
		},
	}
	if !reflect.DeepEqual(expectedOptionSet, optionSet) {
		t.Errorf("unexpected option set: expected=\n%+v\nactual=\n%+v", expectedOptionSet, optionSet)
	}
}

func TestParse_ConfigDefaults(t *testing.T) {
	follow := true
	verify := false
	cfg := &config.Config{
		Timeout: "5",
		Follow:  &follow,
		Verify:  &verify,
		Format:  "bash",
		Color:   "always",
		Print:   "b",
	}

	t.Run("Config applies", func(t *testing.T) {
		_, _, optionSet, err := parse([]string{"curlform"}, cfg, interactive)
		if err != nil {
			t.Fatalf("unexpected error: err=%+v", err)
		}
		if optionSet.Format != FormatBash {
			t.Errorf("unexpected format: %s", optionSet.Format)
		}
		if optionSet.ExchangeOptions.Timeout != 5*time.Second {
			t.Errorf("unexpected timeout: %v", optionSet.ExchangeOptions.Timeout)
		}
		if !optionSet.ExchangeOptions.FollowRedirects || !optionSet.ExchangeOptions.SkipVerify {
			t.Errorf("unexpected exchange options: %+v", optionSet.ExchangeOptions)
		}
		if optionSet.OutputOptions.PrintResponseHeader || !optionSet.OutputOptions.PrintResponseBody {
			t.Errorf("unexpected print options: %+v", optionSet.OutputOptions)
		}
	})

	t.Run("Flags win", func(t *testing.T) {
		_, _, optionSet, err := parse([]string{"curlform", "--format", "cmd", "--timeout", "1m", "--verify", "yes"}, cfg, interactive)
		if err != nil {
			t.Fatalf("unexpected error: err=%+v", err)
		}
		if optionSet.Format != FormatCmd {
			t.Errorf("unexpected format: %s", optionSet.Format)
		}
		if optionSet.ExchangeOptions.Timeout != time.Minute {
			t.Errorf("unexpected timeout: %v", optionSet.ExchangeOptions.Timeout)
		}
		if optionSet.ExchangeOptions.SkipVerify {
			t.Errorf("--verify yes should win over the config")
		}
	})
}

func TestParse_UsageErrors(t *testing.T) {
	testCases := []struct {
		title string
		args  []string
	}{
		{title: "Unknown flag", args: []string{"curlform", "--nope"}},
		{title: "Bad format", args: []string{"curlform", "--format", "xml"}},
		{title: "Watch without file", args: []string{"curlform", "--watch"}},
		{title: "Watch with send", args: []string{"curlform", "--watch", "--file", "cmd.txt", "--send"}},
		{title: "Bad color", args: []string{"curlform", "--color", "sometimes"}},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, usage, _, err := parse(tt.args, nil, interactive)
			if _, ok := errors.Cause(err).(*input.UsageError); !ok {
				t.Errorf("expected a usage error: err=%+v", err)
			}
			if usage == nil {
				t.Errorf("usage should be returned with the error")
			}
		})
	}
}

func TestParse_InvalidValues(t *testing.T) {
	for _, args := range [][]string{
		{"curlform", "--print", "x"},
		{"curlform", "--timeout", "soon"},
		{"curlform", "--verify", "maybe"},
		{"curlform", "--auth", ":secret"},
	} {
		if _, _, _, err := parse(args, nil, interactive); err == nil {
			t.Errorf("expected an error: args=%v", args)
		}
	}
}

func TestParsePrintFlag(t *testing.T) {
	testCases := []struct {
		title            string
		printFlag        string
		stdoutIsTerminal bool
		expected         output.Options
	}{
		{
			title:            "Default on terminal",
			printFlag:        "\000",
			stdoutIsTerminal: true,
			expected:         output.Options{PrintResponseHeader: true, PrintResponseBody: true},
		},
		{
			title:     "Default when piped",
			printFlag: "\000",
			expected:  output.Options{PrintResponseBody: true},
		},
		{
			title:     "Request only",
			printFlag: "HB",
			expected:  output.Options{PrintRequestHeader: true, PrintRequestBody: true},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			var actual output.Options
			if err := parsePrintFlag(tt.printFlag, tt.stdoutIsTerminal, &actual); err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if !reflect.DeepEqual(tt.expected, actual) {
				t.Errorf("unexpected options: expected=%+v, actual=%+v", tt.expected, actual)
			}
		})
	}
}

func TestParseAuth(t *testing.T) {
	asked := false
	ask := func(userName string) (string, error) {
		asked = userName == "bob"
		return "from terminal", nil
	}

	auth, err := parseAuth("bob", ask)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	expected := exchange.AuthOptions{Enabled: true, UserName: "bob", Password: "from terminal"}
	if !asked || !reflect.DeepEqual(expected, auth) {
		t.Errorf("unexpected auth: asked=%v, auth=%+v", asked, auth)
	}

	asked = false
	auth, err = parseAuth("bob:a:b", ask)
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	if asked || auth.Password != "a:b" {
		t.Errorf("unexpected auth: asked=%v, auth=%+v", asked, auth)
	}
}
