package feedback

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// The encoding of a mode is a sequence of records separated by
// recordSeparator:
//
//	name fluff prompt continuation-prompt
//	{ field "(" { selector-bits format } ")" }
//	"***"
//
// where fluff is "true" or "false" and selector-bits is the decimal packed
// selector. Several modes are encoded by joining their encodings with
// recordSeparator.
const (
	recordSeparator = "␞"
	endOfMode       = "***"
	fieldsOpen      = "("
	fieldsClose     = ")"
)

var errTruncatedEncoding = errors.New("encoding ends in the middle of a mode")

// Encode encodes the mode.
func (m *Mode) Encode() string {
	el := []string{m.name, strconv.FormatBool(m.commandFluff), m.prompt, m.contPrompt}
	for _, field := range m.fields {
		el = append(el, field, fieldsOpen)
		for _, s := range m.settings[field] {
			el = append(el, strconv.FormatUint(s.sel.Pack(), 10), s.format)
		}
		el = append(el, fieldsClose)
	}
	el = append(el, endOfMode)
	return strings.Join(el, recordSeparator)
}

// EncodeRetained returns the encoding of all retained modes, ordered by
// name.
func (fb *Feedback) EncodeRetained() string {
	names := make([]string, 0, len(fb.retained))
	for name := range fb.retained {
		names = append(names, name)
	}
	sort.Strings(names)
	encoded := make([]string, len(names))
	for i, name := range names {
		encoded[i] = fb.retained[name]
	}
	return strings.Join(encoded, recordSeparator)
}

// RetainedModeNames returns the names of the retained modes, sorted.
func (fb *Feedback) RetainedModeNames() []string {
	names := make([]string, 0, len(fb.retained))
	for name := range fb.retained {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RestoreEncodedModes adds the modes in an encoding produced by
// EncodeRetained, and keeps retaining them. The legacy flag tells whether the
// encoding was stored under the key used before the record case existed; it
// is only consulted when the encoding itself does not reveal its layout.
//
// Restoring is all-or-nothing. If any part of the encoding is bad, no mode is
// added, all retained state is discarded and an error wrapping
// ErrRetainedCorrupted is returned.
func (fb *Feedback) RestoreEncodedModes(encoded string, legacy bool) error {
	modes, err := DecodeModes(encoded, legacy)
	if err == nil {
		for _, m := range modes {
			if old, ok := fb.modes[m.name]; ok && old.readOnly {
				err = fmt.Errorf("retained mode %s clashes with a predefined mode", m.name)
				break
			}
		}
	}
	if err != nil {
		logger.Warn("discarding retained modes", zap.Error(err))
		fb.retained = map[string]string{}
		fb.retainedCurrent = ""
		return fmt.Errorf("%w: %v", ErrRetainedCorrupted, err)
	}
	for _, m := range modes {
		fb.modes[m.name] = m
		fb.retained[m.name] = m.Encode()
	}
	logger.Debug("restored retained modes", zap.Int("count", len(modes)))
	return nil
}

// DecodeModes decodes an encoding of zero or more modes. See
// RestoreEncodedModes for the meaning of legacy.
func DecodeModes(encoded string, legacy bool) ([]*Mode, error) {
	if encoded == "" {
		return nil, nil
	}
	fallback := layoutCurrent
	if legacy {
		fallback = layoutPreRecord
	}
	r := &recordReader{records: strings.Split(encoded, recordSeparator)}
	var modes []*Mode
	for r.more() {
		m, err := decodeMode(r, fallback)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

type recordReader struct {
	records []string
	pos     int
}

func (r *recordReader) more() bool { return r.pos < len(r.records) }

func (r *recordReader) next() (string, error) {
	if !r.more() {
		return "", errTruncatedEncoding
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

type rawSetting struct {
	bits   uint64
	format string
}

func decodeMode(r *recordReader, fallback layout) (*Mode, error) {
	var header [4]string
	for i := range header {
		rec, err := r.next()
		if err != nil {
			return nil, err
		}
		header[i] = rec
	}
	name := header[0]
	if name == "" {
		return nil, errors.New("mode with an empty name")
	}
	fluff, err := strconv.ParseBool(header[1])
	if err != nil {
		return nil, fmt.Errorf("mode %s: bad fluff flag %q", name, header[1])
	}

	var fields []string
	raw := map[string][]rawSetting{}
	for {
		field, err := r.next()
		if err != nil {
			return nil, err
		}
		if field == endOfMode {
			break
		}
		if _, dup := raw[field]; dup {
			return nil, fmt.Errorf("mode %s: field %s encoded twice", name, field)
		}
		if open, err := r.next(); err != nil {
			return nil, err
		} else if open != fieldsOpen {
			return nil, fmt.Errorf("mode %s: expected %q after field %s, got %q",
				name, fieldsOpen, field, open)
		}
		settings := []rawSetting{}
		for {
			bits, err := r.next()
			if err != nil {
				return nil, err
			}
			if bits == fieldsClose {
				break
			}
			format, err := r.next()
			if err != nil {
				return nil, err
			}
			p, err := strconv.ParseUint(bits, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("mode %s: field %s: bad selector %q", name, field, bits)
			}
			settings = append(settings, rawSetting{p, format})
		}
		fields = append(fields, field)
		raw[field] = settings
	}

	lay := detectLayout(raw, fallback)
	m := newEmptyMode(name, fluff, header[2], header[3])
	m.fields = fields
	for _, field := range fields {
		settings := make([]setting, len(raw[field]))
		for i, rs := range raw[field] {
			sel, err := lay.unpack(rs.bits)
			if err != nil {
				return nil, fmt.Errorf("mode %s: field %s: %v", name, field, err)
			}
			settings[i] = setting{rs.format, sel}
		}
		m.settings[field] = settings
	}
	return m, nil
}
