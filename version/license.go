package version

import (
	"fmt"
	"io"
)

type License struct {
	ModuleName  string
	LicenseName string
	Link        string
}

var Licenses = []License{
	{
		ModuleName:  "curlform",
		LicenseName: "MIT License",
		Link:        "https://github.com/HexmosTech/curlform/blob/master/LICENSE",
	},
	{
		ModuleName:  "Go",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
	{
		ModuleName:  "aurora",
		LicenseName: "WTFPL",
		Link:        "https://github.com/logrusorgru/aurora/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-isatty",
		LicenseName: "MIT License",
		Link:        "https://github.com/mattn/go-isatty/blob/master/LICENSE",
	},
	{
		ModuleName:  "getopt",
		LicenseName: "BSD License",
		Link:        "https://github.com/pborman/getopt/blob/master/LICENSE",
	},
	{
		ModuleName:  "errors",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/errors/blob/master/LICENSE",
	},
	{
		ModuleName:  "bytefmt",
		LicenseName: "Apache License",
		Link:        "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE",
	},
	{
		ModuleName:  "logrus",
		LicenseName: "MIT License",
		Link:        "https://github.com/sirupsen/logrus/blob/master/LICENSE",
	},
	{
		ModuleName:  "fsnotify",
		LicenseName: "BSD License",
		Link:        "https://github.com/fsnotify/fsnotify/blob/main/LICENSE",
	},
	{
		ModuleName:  "go-json",
		LicenseName: "MIT License",
		Link:        "https://github.com/goccy/go-json/blob/master/LICENSE",
	},
	{
		ModuleName:  "yaml.v3",
		LicenseName: "MIT and Apache License",
		Link:        "https://github.com/go-yaml/yaml/blob/v3/LICENSE",
	},
	{
		ModuleName:  "x/crypto",
		LicenseName: "BSD License",
		Link:        "https://cs.opensource.google/go/x/crypto/+/master:LICENSE",
	},
}

func PrintLicenses(w io.Writer) {
	for _, license := range Licenses {
		fmt.Fprintf(w, "%s:\n  %s\n  %s\n\n",
			license.ModuleName,
			license.LicenseName,
			license.Link,
		)
	}
}
