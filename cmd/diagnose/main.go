// Diagnostic tool for checking attribute entries of CDF files
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/robert-malhotra/go-cdf/cdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/diagnose/main.go <file.cdf>")
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("=== Analyzing %s ===\n\n", filename)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	f, err := cdf.Open(filename, cdf.WithLogger(log), cdf.WithChecksumVerification(true))
	if err != nil {
		fmt.Printf("ERROR: Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	info, err := f.Describe()
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Version: %s (%s encoding)\n", info.Version, info.Encoding)
	fmt.Printf("Compressed: %v, checksum: %v\n", info.Compressed, info.Checksum)
	fmt.Println()

	names, err := f.Attributes()
	if err != nil {
		fmt.Printf("ERROR listing attributes: %v\n", err)
		os.Exit(1)
	}
	vars, err := f.Variables()
	if err != nil {
		fmt.Printf("ERROR listing variables: %v\n", err)
	}

	problems := 0
	for _, name := range names {
		problems += walkAttr(f, name, vars)
	}
	fmt.Printf("\n%d attributes, %d variables, %d problems\n", len(names), len(vars), problems)
	if problems > 0 {
		os.Exit(2)
	}
}

func walkAttr(f *cdf.File, name string, vars []string) int {
	s, err := f.Info(name)
	if err != nil {
		fmt.Printf("Attribute %q: ERROR %v\n", name, err)
		return 1
	}
	fmt.Printf("Attribute %q (#%d, %s):\n", s.Name, s.Number, s.Scope)

	attr, err := f.Attr(name)
	if err != nil {
		fmt.Printf("  ERROR: %v\n", err)
		return 1
	}

	if !attr.IsGlobal() {
		fmt.Printf("  rEntries: %d (max %d), zEntries: %d (max %d)\n",
			s.REntries.NumEntries, s.REntries.MaxEntry, s.ZEntries.NumEntries, s.ZEntries.MaxEntry)
		problems := 0
		for _, v := range vars {
			val, err := attr.ParseVariable(v)
			if errors.Is(err, cdf.ErrAttributeNotOnVariable) {
				continue
			}
			if err != nil {
				fmt.Printf("  %s: ERROR %v\n", v, err)
				problems++
				continue
			}
			fmt.Printf("  %s: %s %s\n", v, val.Type(), val)
		}
		return problems
	}

	scan, err := attr.BuildMask(true)
	if err != nil {
		fmt.Printf("  ERROR building mask: %v\n", err)
		return 1
	}
	fmt.Printf("  Mask: %s (%d of %d declared)\n", scan.Mask, scan.Mask.Count(), scan.Mask.Reported())
	fmt.Printf("  Types: %v\n", scan.Types)
	for _, d := range scan.Diagnostics {
		fmt.Printf("  WARNING: %s\n", d)
	}

	diags, err := attr.ParseGlobal()
	if err != nil {
		fmt.Printf("  ERROR reading entries: %v\n", err)
		return 1
	}
	if v, ok := attr.Value(); ok {
		fmt.Printf("  Value: %s\n", v)
	} else {
		fmt.Printf("  [EMPTY - no entries]\n")
	}
	for _, d := range diags {
		if d.Kind == cdf.ScopeMismatch {
			fmt.Printf("  WARNING: %s\n", d)
		}
	}
	if !scan.Mask.Consistent() {
		return 1
	}
	return 0
}
