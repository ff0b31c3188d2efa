package cdf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
	"github.com/robert-malhotra/go-cdf/internal/dtype"
	"github.com/robert-malhotra/go-cdf/internal/filter"
	"github.com/robert-malhotra/go-cdf/internal/record"
)

// File is an attribute session over a CDF file or any other EntryProber.
type File struct {
	path   string
	closer io.Closer
	rec    *record.File
	prober EntryProber
	log    logrus.FieldLogger
	closed bool

	attrs map[string]*Attribute
}

// Open opens a CDF file for reading.
func Open(path string, opts ...Option) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	osf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	st, err := osf.Stat()
	if err != nil {
		osf.Close()
		return nil, fmt.Errorf("opening file: %w", err)
	}

	f, err := OpenReader(osf, st.Size(), opts...)
	if err != nil {
		osf.Close()
		return nil, err
	}
	f.path = path
	f.closer = osf
	return f, nil
}

// OpenReader reads a CDF of the given size from r. The caller keeps
// ownership of r.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidArgument)
	}
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	rec, err := record.Open(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, translate(err)
	}

	log := o.logger.WithFields(logrus.Fields{
		"version":  rec.CDR.VersionString(),
		"encoding": rec.CDR.Encoding.String(),
	})
	if o.verifyChecksum {
		if rec.CDR.HasChecksum() {
			if err := binpkg.VerifyMD5(r, size); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrChecksum, err)
			}
			log.Debug("checksum verified")
		} else {
			log.Debug("file has no checksum")
		}
	}
	log.WithFields(logrus.Fields{
		"compressed": rec.Compressed,
		"attributes": len(rec.Attributes()),
		"variables":  len(rec.Variables()),
	}).Debug("opened CDF")

	return newFile(&fileProber{rec: rec, assumedScopes: o.assumedScopes}, rec, o), nil
}

// NewSession creates an attribute session over an arbitrary prober.
func NewSession(p EntryProber, opts ...Option) (*File, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil prober", ErrInvalidArgument)
	}
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newFile(p, nil, o), nil
}

func newFile(p EntryProber, rec *record.File, o *fileOptions) *File {
	return &File{
		rec:    rec,
		prober: p,
		log:    o.logger,
		attrs:  make(map[string]*Attribute),
	}
}

// translate maps internal decoding errors onto the package sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, record.ErrNotCDF):
		return fmt.Errorf("%w: %w", ErrNotCDF, err)
	case errors.Is(err, record.ErrUnsupportedVersion),
		errors.Is(err, dtype.ErrUnsupported),
		errors.Is(err, filter.ErrUnsupported):
		return fmt.Errorf("%w: %w", ErrUnsupported, err)
	default:
		return err
	}
}

// Close releases the file. Descriptors obtained from f fail with
// ErrClosed afterwards.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.attrs = nil
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}

// Path returns the path the file was opened from, if any.
func (f *File) Path() string {
	return f.path
}

func (f *File) checkOpen() error {
	if f.closed {
		return ErrClosed
	}
	return nil
}

// diagnose logs d and returns it.
func (f *File) diagnose(d Diagnostic) Diagnostic {
	f.log.WithFields(logrus.Fields{
		"attribute": d.Attr,
		"reported":  d.Reported,
		"observed":  d.Observed,
	}).Warn(d.Kind.String())
	return d
}

// Attr returns the descriptor of the named attribute. Repeated calls
// return the same descriptor.
func (f *File) Attr(name string) (*Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty attribute name", ErrInvalidArgument)
	}
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	if a, ok := f.attrs[name]; ok {
		return a, nil
	}

	inq, err := f.prober.Inquire(name)
	if err != nil {
		return nil, &AttrError{Op: "inquire", Attr: name, Err: err}
	}
	if inq.Name == "" {
		inq.Name = name
	}
	a := newAttribute(f, inq)
	f.attrs[name] = a
	return a, nil
}

// GlobalAttr returns the descriptor of a global attribute.
func (f *File) GlobalAttr(name string) (*Attribute, error) {
	a, err := f.Attr(name)
	if err != nil {
		return nil, err
	}
	if !a.IsGlobal() {
		return nil, &AttrError{Op: "global attribute", Attr: name, Err: ErrUnsupportedScope}
	}
	return a, nil
}

// VariableAttr returns the descriptor of a variable attribute.
func (f *File) VariableAttr(name string) (*Attribute, error) {
	a, err := f.Attr(name)
	if err != nil {
		return nil, err
	}
	if a.IsGlobal() {
		return nil, &AttrError{Op: "variable attribute", Attr: name, Err: ErrUnsupportedScope}
	}
	return a, nil
}

// Attributes lists attribute names in file order.
func (f *File) Attributes() ([]string, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	return f.prober.Attributes()
}

// Variables lists variable names, zVariables first.
func (f *File) Variables() ([]string, error) {
	if err := f.checkOpen(); err != nil {
		return nil, err
	}
	lister, ok := f.prober.(VariableLister)
	if !ok {
		return nil, fmt.Errorf("%w: prober cannot list variables", ErrUnsupported)
	}
	return lister.Variables()
}

// AttrSummary describes an attribute and the declared counts of its entry
// spaces. Spaces that do not apply to the scope are zero with MaxEntry -1.
type AttrSummary struct {
	Name   string
	Number int
	Scope  Scope

	GEntries EntryInfo
	REntries EntryInfo
	ZEntries EntryInfo
}

// Info summarizes the named attribute.
func (f *File) Info(name string) (AttrSummary, error) {
	a, err := f.Attr(name)
	if err != nil {
		return AttrSummary{}, err
	}
	inq, err := f.prober.Inquire(a.name)
	if err != nil {
		return AttrSummary{}, &AttrError{Op: "inquire", Attr: name, Err: err}
	}

	none := EntryInfo{MaxEntry: -1}
	s := AttrSummary{
		Name:     inq.Name,
		Number:   inq.Number,
		Scope:    inq.Scope,
		GEntries: none,
		REntries: none,
		ZEntries: none,
	}
	kinds := []EntryKind{REntry, ZEntry}
	if inq.Scope.IsGlobal() {
		kinds = []EntryKind{GEntry}
	}
	for _, k := range kinds {
		info, err := f.prober.AttrInfo(inq.Number, k)
		if err != nil {
			return AttrSummary{}, &AttrError{Op: "info", Attr: name, Err: err}
		}
		switch k {
		case GEntry:
			s.GEntries = info
		case REntry:
			s.REntries = info
		case ZEntry:
			s.ZEntries = info
		}
	}
	return s, nil
}

// FileInfo describes a CDF file.
type FileInfo struct {
	Version    string
	Encoding   string
	Copyright  string
	Compressed bool
	Checksum   bool
	NumAttrs   int
	NumVars    int
}

// Describe reports file level information. It fails with ErrUnsupported
// for sessions created with NewSession.
func (f *File) Describe() (FileInfo, error) {
	if err := f.checkOpen(); err != nil {
		return FileInfo{}, err
	}
	if f.rec == nil {
		return FileInfo{}, fmt.Errorf("%w: session is not backed by a CDF file", ErrUnsupported)
	}
	return FileInfo{
		Version:    f.rec.CDR.VersionString(),
		Encoding:   f.rec.CDR.Encoding.String(),
		Copyright:  f.rec.CDR.Copyright,
		Compressed: f.rec.Compressed,
		Checksum:   f.rec.CDR.HasChecksum(),
		NumAttrs:   len(f.rec.Attributes()),
		NumVars:    len(f.rec.Variables()),
	}, nil
}
