package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/colt-lang/coltgo/internal/bytesize"
)

// ColtiExecutable file format
// ============================
//
// Header (little-endian, fixed size):
//   - section_count:        u16
//   - language_version:     u16  packed [5b major][5b minor][6b patch]
//   - date_hour_month:      u8   packed [4b hour+1][4b month+1]
//   - date_minute_am:       u8   packed [1b pad][6b minute+1][1b is_am]
//   - date_year_day:        u16  packed [11b year_since_2023][5b day+1]
//   - magic_number:         u32  = "COLT" (0x434F4C54)
//   - reserved:             u32  = 0
//
// Immediately after the header: section_count little-endian u64 offsets
// from the start of the file, one per section. Each section at its offset
// is a NUL-terminated name (<= 31 bytes excluding NUL) padded to 8-byte
// alignment, a u64 content size, then the content bytes.

const (
	// MagicNumber identifies a ColtiExecutable: ASCII "COLT".
	MagicNumber uint32 = 0x434F4C54

	// HeaderSize is the fixed byte size of the header, before the
	// section-offset index.
	HeaderSize = 16

	// MaxSectionNameLen is the longest section name, excluding the NUL
	// terminator.
	MaxSectionNameLen = 31
)

// Version is the three-component language version packed into the
// header's language_version field: [5b major][5b minor][6b patch].
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func encodeVersion(v Version) uint16 {
	var w uint16
	w |= uint16(v.Major&0x1f) << 11
	w |= uint16(v.Minor&0x1f) << 6
	w |= uint16(v.Patch & 0x3f)
	return w
}

func decodeVersion(w uint16) Version {
	return Version{
		Major: uint8(w>>11) & 0x1f,
		Minor: uint8(w>>6) & 0x1f,
		Patch: uint8(w) & 0x3f,
	}
}

// Timestamp is the executable's compilation timestamp: a calendar date
// and time-of-day, with minute-level precision, as the header's bit
// layout allows. A zero Timestamp does not encode a valid date; passing
// a nil *Timestamp to NewExecutable builds a header with no timestamp.
type Timestamp struct {
	Year   int // full year, e.g. 2025
	Month  int // 1-12
	Day    int // 1-31
	Hour   int // 0-23
	Minute int // 0-59
}

// encodeTimestamp packs ts into the header's three date fields:
// hour/month as [4b hour+1][4b month+1] (0 in either means "no date"),
// minute/am as [1b pad][6b minute+1][1b is_am] (when is_am=0, the
// decoded hour has 12 added; when the minute field is 0, there is no
// date), year/day as [11b year_since_2023][5b day+1].
func encodeTimestamp(ts *Timestamp) (hourMonth, minuteAM uint8, yearDay uint16) {
	if ts == nil {
		return 0, 0, 0
	}
	hour12 := ts.Hour % 12
	isAM := ts.Hour < 12
	hourMonth = uint8(hour12+1)<<4 | (uint8(ts.Month+1) & 0xf)
	var amBit uint8
	if isAM {
		amBit = 1
	}
	minuteAM = (uint8(ts.Minute+1)&0x3f)<<1 | amBit
	// day+1 reaches 32 on the last day of a 31-day month, which the
	// 5-bit field masks to 0; such a date decodes as "no date".
	yearDay = (uint16(ts.Year-2023)&0x7ff)<<5 | (uint16(ts.Day+1) & 0x1f)
	return hourMonth, minuteAM, yearDay
}

// decodeTimestamp is the inverse of encodeTimestamp; it returns
// (Timestamp{}, false) when the hour, month, minute, or day sub-field
// is empty (all-zero), meaning "no date".
func decodeTimestamp(hourMonth, minuteAM uint8, yearDay uint16) (Timestamp, bool) {
	hourField := hourMonth >> 4
	monthField := hourMonth & 0xf
	minuteField := (minuteAM >> 1) & 0x3f
	isAM := minuteAM&0x1 != 0
	yearField := yearDay >> 5
	dayField := yearDay & 0x1f

	if hourField == 0 || monthField == 0 || minuteField == 0 || dayField == 0 {
		return Timestamp{}, false
	}

	hour := int(hourField - 1)
	if !isAM {
		hour += 12
	}
	return Timestamp{
		Year:   int(yearField) + 2023,
		Month:  int(monthField - 1),
		Day:    int(dayField - 1),
		Hour:   hour,
		Minute: int(minuteField - 1),
	}, true
}

// Header is the fixed-size ColtiExecutable header, decoded into Go
// fields (see the bit-packing notes above for the on-disk encoding).
type Header struct {
	SectionCount uint16
	Version      Version
	Timestamp    Timestamp
	HasTimestamp bool
}

// Section is one named, length-prefixed region of an executable.
type Section struct {
	Name    string
	Content []byte
}

// Executable is an in-memory ColtiExecutable: a header plus its ordered
// sections.
type Executable struct {
	Header   Header
	Sections []Section
}

// NewExecutable builds an in-memory executable with no sections yet;
// AddSection appends to it.
func NewExecutable(version Version, ts *Timestamp) *Executable {
	h := Header{Version: version}
	if ts != nil {
		h.Timestamp = *ts
		h.HasTimestamp = true
	}
	return &Executable{Header: h}
}

// AddSection appends a named section; name must be <= MaxSectionNameLen
// bytes.
func (e *Executable) AddSection(name string, content []byte) error {
	if len(name) > MaxSectionNameLen {
		return fmt.Errorf("bytecode: section name %q exceeds %d bytes", name, MaxSectionNameLen)
	}
	e.Sections = append(e.Sections, Section{Name: name, Content: content})
	e.Header.SectionCount = uint16(len(e.Sections))
	return nil
}

// FindSection returns the first section named name, if any.
func (e *Executable) FindSection(name string) (Section, bool) {
	for _, s := range e.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

func sectionHeaderSize(nameLen int) uint64 {
	// name + NUL, padded to 8 bytes, then an 8-byte size field.
	return bytesize.AlignUp8(uint64(nameLen)+1) + 8
}

// Encode serializes e into the ColtiExecutable on-disk format.
func (e *Executable) Encode() ([]byte, error) {
	var buf bytes.Buffer

	hourMonth, minuteAM, yearDay := encodeTimestamp(nil)
	if e.Header.HasTimestamp {
		hourMonth, minuteAM, yearDay = encodeTimestamp(&e.Header.Timestamp)
	}

	if err := binary.Write(&buf, binary.LittleEndian, e.Header.SectionCount); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, encodeVersion(e.Header.Version)); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(hourMonth); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(minuteAM); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, yearDay); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, MagicNumber); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(0)); err != nil { // reserved
		return nil, err
	}

	// Section index: section_count little-endian u64 offsets, computed
	// up front so bodies can be written in a single forward pass.
	indexStart := uint64(buf.Len())
	offsets := make([]uint64, len(e.Sections))
	offset := indexStart + uint64(len(e.Sections))*8
	for i, s := range e.Sections {
		offsets[i] = offset
		offset += sectionHeaderSize(len(s.Name)) + uint64(len(s.Content))
	}
	for _, off := range offsets {
		if err := binary.Write(&buf, binary.LittleEndian, off); err != nil {
			return nil, err
		}
	}

	for _, s := range e.Sections {
		padded := make([]byte, bytesize.AlignUp8(uint64(len(s.Name))+1))
		copy(padded, s.Name)
		buf.Write(padded)
		if err := binary.Write(&buf, binary.LittleEndian, uint64(len(s.Content))); err != nil {
			return nil, err
		}
		buf.Write(s.Content)
	}

	return buf.Bytes(), nil
}

// Decode parses a ColtiExecutable from its on-disk bytes. A malformed
// input (bad magic, truncated header, truncated section index,
// out-of-range section offset, over-long section name) reports false;
// the caller owns the user-facing error message.
func Decode(data []byte) (*Executable, bool) {
	if len(data) < HeaderSize {
		return nil, false
	}
	r := bytes.NewReader(data)

	var sectionCount, versionRaw uint16
	if binary.Read(r, binary.LittleEndian, &sectionCount) != nil {
		return nil, false
	}
	if binary.Read(r, binary.LittleEndian, &versionRaw) != nil {
		return nil, false
	}
	hourMonth, err := r.ReadByte()
	if err != nil {
		return nil, false
	}
	minuteAM, err := r.ReadByte()
	if err != nil {
		return nil, false
	}
	var yearDay uint16
	if binary.Read(r, binary.LittleEndian, &yearDay) != nil {
		return nil, false
	}
	var magic uint32
	if binary.Read(r, binary.LittleEndian, &magic) != nil {
		return nil, false
	}
	if magic != MagicNumber {
		return nil, false
	}
	var reserved uint32
	if binary.Read(r, binary.LittleEndian, &reserved) != nil {
		return nil, false
	}

	ts, hasTS := decodeTimestamp(hourMonth, minuteAM, yearDay)
	exe := &Executable{Header: Header{
		SectionCount: sectionCount,
		Version:      decodeVersion(versionRaw),
		Timestamp:    ts,
		HasTimestamp: hasTS,
	}}

	offsets := make([]uint64, sectionCount)
	for i := range offsets {
		if binary.Read(r, binary.LittleEndian, &offsets[i]) != nil {
			return nil, false
		}
	}

	for _, off := range offsets {
		if off >= uint64(len(data)) {
			return nil, false
		}
		sec, ok := decodeSection(data, off)
		if !ok {
			return nil, false
		}
		exe.Sections = append(exe.Sections, sec)
	}

	return exe, true
}

func decodeSection(data []byte, offset uint64) (Section, bool) {
	if offset >= uint64(len(data)) {
		return Section{}, false
	}
	rest := data[offset:]
	nameEnd := bytes.IndexByte(rest, 0)
	if nameEnd < 0 || nameEnd > MaxSectionNameLen {
		return Section{}, false
	}
	name := string(rest[:nameEnd])
	padded := bytesize.AlignUp8(uint64(nameEnd) + 1)
	if uint64(len(rest)) < padded+8 {
		return Section{}, false
	}
	sizeOff := padded
	size := binary.LittleEndian.Uint64(rest[sizeOff : sizeOff+8])
	contentStart := sizeOff + 8
	if uint64(len(rest)) < contentStart+size {
		return Section{}, false
	}
	content := make([]byte, size)
	copy(content, rest[contentStart:contentStart+size])
	return Section{Name: name, Content: content}, true
}

// WriteTo writes e's encoded form to w, matching io.WriterTo for callers
// that stream straight to a file.
func (e *Executable) WriteTo(w io.Writer) (int64, error) {
	data, err := e.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
