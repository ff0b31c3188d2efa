package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-cdf/cdf"
)

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of cdfattr.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("cdfattr v%s\n", Version)
		},
		DisableAutoGenTag: true,
	}
}

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List attributes and variables.",
		Long: `list prints the version and encoding of a CDF file, every attribute with
its scope and declared entry counts, and the names of all variables.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Describe()
			if err != nil {
				return err
			}
			r := &fileReport{
				Path:       args[0],
				Version:    info.Version,
				Encoding:   info.Encoding,
				Compressed: info.Compressed,
				Checksum:   info.Checksum,
			}

			names, err := f.Attributes()
			if err != nil {
				return err
			}
			for _, name := range names {
				s, err := f.Info(name)
				if err != nil {
					return err
				}
				sum := attrSummary{Name: s.Name, Number: s.Number, Scope: s.Scope.String()}
				if s.Scope.IsGlobal() {
					sum.GEntries = counts(s.GEntries)
				} else {
					sum.REntries = counts(s.REntries)
					sum.ZEntries = counts(s.ZEntries)
				}
				r.Attributes = append(r.Attributes, sum)
			}

			if r.Variables, err = f.Variables(); err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), r)
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE ATTRIBUTE",
		Short: "Print the value of an attribute.",
		Long: `show resolves an attribute. For a global attribute every entry is read and
the result printed as a scalar, an array of one type, or a collection of
mixed types. For a variable attribute the entry of every variable that has
one is printed.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			attr, err := f.Attr(args[1])
			if err != nil {
				return err
			}
			if attr.IsGlobal() {
				diags, err := attr.ParseGlobal()
				if err != nil {
					return err
				}
				v, _ := attr.Value()
				r := aggregated(attr.Name(), v)
				r.Diagnostics = diagnostics(diags)
				return a.write(cmd.OutOrStdout(), r)
			}

			vars, err := f.Variables()
			if err != nil {
				return err
			}
			r := &variablesReport{Attribute: attr.Name(), Scope: attr.Scope().String(), Entries: []*valueReport{}}
			for _, name := range vars {
				v, err := attr.ParseVariable(name)
				if errors.Is(err, cdf.ErrAttributeNotOnVariable) {
					continue
				}
				if err != nil {
					return err
				}
				r.Entries = append(r.Entries, single(attr.Name(), name, v))
			}
			return a.write(cmd.OutOrStdout(), r)
		},
	}
}

func (a *App) maskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mask FILE ATTRIBUTE",
		Short: "Print which entries of a global attribute exist.",
		Long: `mask scans the declared entry range of a global attribute and prints a
flag per entry number: 1 where an entry exists, 0 where it does not.
A warning is printed when the number found differs from the number the
file declares.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			attr, err := f.GlobalAttr(args[1])
			if err != nil {
				return err
			}
			scan, err := attr.BuildMask(a.Cfg.GetBool("types"))
			if err != nil {
				return err
			}
			r := &maskReport{
				Attribute:   attr.Name(),
				Mask:        scan.Mask.String(),
				Count:       scan.Mask.Count(),
				Reported:    scan.Mask.Reported(),
				Diagnostics: diagnostics(scan.Diagnostics),
			}
			for _, t := range scan.Types {
				r.Types = append(r.Types, t.String())
			}
			return a.write(cmd.OutOrStdout(), r)
		},
	}
}

func (a *App) entriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries FILE ATTRIBUTE",
		Short: "Read entries of a global attribute.",
		Long: `entries reads entries of a global attribute and prints the folded value
together with the entry numbers read and the entry mask. With --entries
only the listed entries are read, in the order given; each must exist.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.entryList()
			if err != nil {
				return err
			}
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			attr, err := f.GlobalAttr(args[1])
			if err != nil {
				return err
			}
			agg, err := attr.Aggregate(entries...)
			if err != nil {
				return err
			}
			r := aggregated(attr.Name(), agg.Value)
			r.Entries = agg.Entries
			r.Mask = agg.Mask.String()
			r.Diagnostics = diagnostics(agg.Diagnostics)
			return a.write(cmd.OutOrStdout(), r)
		},
	}
}

func (a *App) varCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "var FILE ATTRIBUTE VARIABLE",
		Short: "Print the entry of a variable attribute for one variable.",
		Args:  cobra.ExactArgs(3),
		Long: `var prints the entry a variable attribute holds for the named variable.
It fails when the variable has no entry for the attribute.`,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			attr, err := f.Attr(args[1])
			if err != nil {
				return err
			}
			v, err := attr.ParseVariable(args[2])
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), single(attr.Name(), args[2], v))
		},
	}
}
