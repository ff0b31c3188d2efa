package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-cdf/cdf"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatCBOR = "cbor"
)

func (a *App) format() (string, error) {
	f := strings.ToLower(cast.ToString(a.Cfg.Get("output")))
	switch f {
	case formatText, formatYAML, formatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("cdfattr: unknown output format %q", f)
	}
}

// report is a command result.
type report interface {
	writeText(w io.Writer)
}

// write renders r in the configured format.
func (a *App) write(w io.Writer, r report) error {
	f, err := a.format()
	if err != nil {
		return err
	}
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case formatCBOR:
		b, err := cbor.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding cbor: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		r.writeText(w)
		return nil
	}
}

type countReport struct {
	Num int `yaml:"num" cbor:"num"`
	Max int `yaml:"max" cbor:"max"`
}

func counts(e cdf.EntryInfo) *countReport {
	return &countReport{Num: e.NumEntries, Max: e.MaxEntry}
}

type attrSummary struct {
	Name     string       `yaml:"name" cbor:"name"`
	Number   int          `yaml:"number" cbor:"number"`
	Scope    string       `yaml:"scope" cbor:"scope"`
	GEntries *countReport `yaml:"gEntries,omitempty" cbor:"gEntries,omitempty"`
	REntries *countReport `yaml:"rEntries,omitempty" cbor:"rEntries,omitempty"`
	ZEntries *countReport `yaml:"zEntries,omitempty" cbor:"zEntries,omitempty"`
}

type fileReport struct {
	Path       string        `yaml:"path" cbor:"path"`
	Version    string        `yaml:"version" cbor:"version"`
	Encoding   string        `yaml:"encoding" cbor:"encoding"`
	Compressed bool          `yaml:"compressed" cbor:"compressed"`
	Checksum   bool          `yaml:"checksum" cbor:"checksum"`
	Attributes []attrSummary `yaml:"attributes" cbor:"attributes"`
	Variables  []string      `yaml:"variables" cbor:"variables"`
}

func (r *fileReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s: CDF %s, %s encoding", r.Path, r.Version, r.Encoding)
	if r.Compressed {
		fmt.Fprint(w, ", compressed")
	}
	if r.Checksum {
		fmt.Fprint(w, ", checksum")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Attributes (%d):\n", len(r.Attributes))
	for _, a := range r.Attributes {
		fmt.Fprintf(w, "  %-24s %-24s", a.Name, a.Scope)
		for _, c := range []struct {
			name string
			c    *countReport
		}{{"g", a.GEntries}, {"r", a.REntries}, {"z", a.ZEntries}} {
			if c.c != nil {
				fmt.Fprintf(w, " %sEntries=%d max=%d", c.name, c.c.Num, c.c.Max)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Variables (%d):\n", len(r.Variables))
	for _, v := range r.Variables {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

type itemReport struct {
	Type  string `yaml:"type" cbor:"type"`
	Value any    `yaml:"value" cbor:"value"`
}

type valueReport struct {
	Attribute   string       `yaml:"attribute" cbor:"attribute"`
	Variable    string       `yaml:"variable,omitempty" cbor:"variable,omitempty"`
	Kind        string       `yaml:"kind" cbor:"kind"`
	Type        string       `yaml:"type,omitempty" cbor:"type,omitempty"`
	Value       any          `yaml:"value,omitempty" cbor:"value,omitempty"`
	Items       []itemReport `yaml:"items,omitempty" cbor:"items,omitempty"`
	Entries     []int        `yaml:"entries,omitempty" cbor:"entries,omitempty"`
	Mask        string       `yaml:"mask,omitempty" cbor:"mask,omitempty"`
	Diagnostics []string     `yaml:"diagnostics,omitempty" cbor:"diagnostics,omitempty"`
}

func aggregated(attr string, v cdf.AggregatedValue) *valueReport {
	r := &valueReport{Attribute: attr, Kind: v.Kind().String()}
	if t, ok := v.Type(); ok {
		r.Type = t.String()
	}
	if v.Kind() == cdf.MixedCollection {
		for _, it := range v.Items() {
			r.Items = append(r.Items, itemReport{Type: it.Type.String(), Value: it.Value.Interface()})
		}
		return r
	}
	r.Value = v.Interface()
	return r
}

func single(attr, variable string, v cdf.Value) *valueReport {
	return &valueReport{
		Attribute: attr,
		Variable:  variable,
		Kind:      cdf.Scalar.String(),
		Type:      v.Type().String(),
		Value:     v.Interface(),
	}
}

func diagnostics(ds []cdf.Diagnostic) []string {
	var out []string
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}

func (r *valueReport) writeText(w io.Writer) {
	name := r.Attribute
	if r.Variable != "" {
		name += " (" + r.Variable + ")"
	}
	fmt.Fprintf(w, "%s: %s", name, r.Kind)
	if r.Type != "" {
		fmt.Fprintf(w, " %s", r.Type)
	}
	fmt.Fprintln(w)
	if r.Entries != nil {
		fmt.Fprintf(w, "  entries: %v\n", r.Entries)
	}
	if r.Mask != "" {
		fmt.Fprintf(w, "  mask:    %s\n", r.Mask)
	}
	if r.Items != nil {
		for i, it := range r.Items {
			fmt.Fprintf(w, "  [%d] %s %s\n", i, it.Type, formatValue(it.Value))
		}
	} else if r.Value != nil {
		fmt.Fprintf(w, "  value:   %s\n", formatValue(r.Value))
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  warning: %s\n", d)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(x)
	}
}

type variablesReport struct {
	Attribute string         `yaml:"attribute" cbor:"attribute"`
	Scope     string         `yaml:"scope" cbor:"scope"`
	Entries   []*valueReport `yaml:"entries" cbor:"entries"`
}

func (r *variablesReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s: %s, %d variables\n", r.Attribute, r.Scope, len(r.Entries))
	for _, e := range r.Entries {
		fmt.Fprintf(w, "  %-24s %s %s\n", e.Variable, e.Type, formatValue(e.Value))
	}
}

type maskReport struct {
	Attribute   string   `yaml:"attribute" cbor:"attribute"`
	Mask        string   `yaml:"mask" cbor:"mask"`
	Count       int      `yaml:"count" cbor:"count"`
	Reported    int      `yaml:"reported" cbor:"reported"`
	Types       []string `yaml:"types,omitempty" cbor:"types,omitempty"`
	Diagnostics []string `yaml:"diagnostics,omitempty" cbor:"diagnostics,omitempty"`
}

func (r *maskReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s: %s (%d found, %d declared)\n", r.Attribute, r.Mask, r.Count, r.Reported)
	if r.Types != nil {
		fmt.Fprintf(w, "  types: %s\n", strings.Join(r.Types, " "))
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  warning: %s\n", d)
	}
}
