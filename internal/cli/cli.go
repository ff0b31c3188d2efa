// Package cli implements the cdfattr command line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robert-malhotra/go-cdf/cdf"
)

// Version is the cdfattr version.
const Version = "0.3.0"

// App holds the command tree and its configuration.
type App struct {
	// Cfg holds configuration from flags, environment and config file.
	Cfg *viper.Viper

	// Root is the main command.
	Root *cobra.Command

	// Log receives library diagnostics.
	Log *logrus.Logger

	options []option
}

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// New builds the command tree.
func New() *App {
	a := &App{Cfg: viper.New(), Log: logrus.New()}

	a.Root = &cobra.Command{
		Use:   "cdfattr",
		Short: "Inspect attributes of CDF files.",
		Long: `cdfattr reads global and variable attributes of CDF (Common Data Format)
files. Sparse entries are reported as found; declared entry counts that
disagree with the file contents are reported as warnings.

Configuration can be set with command line flags, a configuration file
(--config), or environment variables in the format 'CDFATTR_var' where
'var' is the flag name with dashes replaced by underscores.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}

	listCmd := a.listCmd()
	showCmd := a.showCmd()
	maskCmd := a.maskCmd()
	entriesCmd := a.entriesCmd()
	varCmd := a.varCmd()
	a.Root.AddCommand(listCmd, showCmd, maskCmd, entriesCmd, varCmd, a.versionCmd())

	a.options = []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{a.Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output selects the output format: text, yaml or cbor.`,
			shorthand:  "o",
			defaultVal: "text",
			flagsets:   []*pflag.FlagSet{a.Root.PersistentFlags()},
		},
		{
			name: "log-level",
			usage: `
              log-level sets the level of diagnostic messages written to
              standard error (panic, fatal, error, warn, info, debug, trace).`,
			defaultVal: "warn",
			flagsets:   []*pflag.FlagSet{a.Root.PersistentFlags()},
		},
		{
			name: "verify-checksum",
			usage: `
              verify-checksum verifies the MD5 checksum of files that
              carry one before reading them.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{a.Root.PersistentFlags()},
		},
		{
			name: "assumed-scopes",
			usage: `
              assumed-scopes reports GLOBAL_SCOPE_ASSUMED and
              VARIABLE_SCOPE_ASSUMED as stored. When false they are
              reported as their definite scopes.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{a.Root.PersistentFlags()},
		},
		{
			name: "types",
			usage: `
              types lists the data type of every entry found.`,
			shorthand:  "t",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{maskCmd.Flags()},
		},
		{
			name: "entries",
			usage: `
              entries specifies the entry numbers to read, in order.
              All entries are read when empty.`,
			shorthand:  "e",
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{entriesCmd.Flags()},
		},
	}

	a.Cfg.SetEnvPrefix("CDFATTR")
	a.Cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.Cfg.AutomaticEnv()

	for _, option := range a.options {
		for i, set := range option.flagsets {
			if i != 0 { // the flag exists on the first set already
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case []int:
				set.IntSliceP(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			a.Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return a
}

// Execute runs the command line with args.
func (a *App) Execute(args []string) error {
	a.Root.SetArgs(args)
	return a.Root.Execute()
}

// setup reads the configuration file, if there is one, and configures
// logging.
func (a *App) setup(cmd *cobra.Command) error {
	if cfgpath := a.Cfg.GetString("config"); cfgpath != "" {
		a.Cfg.SetConfigFile(cfgpath)
		if err := a.Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("cdfattr: problem reading configuration file: %v", err)
		}
	}

	level, err := logrus.ParseLevel(cast.ToString(a.Cfg.Get("log-level")))
	if err != nil {
		return fmt.Errorf("cdfattr: %v", err)
	}
	a.Log.SetLevel(level)
	a.Log.SetOutput(cmd.ErrOrStderr())
	a.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if _, err := a.format(); err != nil {
		return err
	}
	return nil
}

// open opens a CDF with the configured options.
func (a *App) open(path string) (*cdf.File, error) {
	verify, err := cast.ToBoolE(a.Cfg.Get("verify-checksum"))
	if err != nil {
		return nil, fmt.Errorf("cdfattr: verify-checksum: %v", err)
	}
	assumed, err := cast.ToBoolE(a.Cfg.Get("assumed-scopes"))
	if err != nil {
		return nil, fmt.Errorf("cdfattr: assumed-scopes: %v", err)
	}
	return cdf.Open(path,
		cdf.WithLogger(a.Log),
		cdf.WithChecksumVerification(verify),
		cdf.WithAssumedScopes(assumed),
	)
}

// entryList returns the configured entry numbers. Values from the
// environment or a config file may be a comma separated string.
func (a *App) entryList() ([]int, error) {
	v := a.Cfg.Get("entries")
	if s, ok := v.(string); ok {
		s = strings.Trim(s, "[]")
		v = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	}
	entries, err := cast.ToIntSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("cdfattr: entries: %v", err)
	}
	return entries, nil
}
