// Package ipo reads the public IPO listing and maps its records into
// core.IPO.
//
// The listing is owned by a third party and its records are loosely typed:
// ids and lot sizes arrive as numbers or strings, prices as strings, dates
// in free text and any field may be null. Nothing in this package fails on
// a malformed record. Every field falls back to a documented default.
package ipo

import (
	"bytes"
	"log/slog"
	"strconv"

	"github.com/goccy/go-json"
)

// Scalar is a JSON value that may be a number, a string, a bool or null.
// It keeps the raw text so callers decide how to interpret it.
type Scalar struct {
	raw    string
	valid  bool
	number bool
}

// NewScalar returns a Scalar holding the text s.
func NewScalar(s string) Scalar { return Scalar{raw: s, valid: true} }

// NewNumber returns a Scalar holding the number f.
func NewNumber(f float64) Scalar {
	return Scalar{raw: strconv.FormatFloat(f, 'f', -1, 64), valid: true, number: true}
}

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*s = Scalar{}
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar{raw: str, valid: true}
	case b[0] == '{', b[0] == '[':
		// Objects and arrays are not scalars; treat them as absent.
		*s = Scalar{}
	default:
		_, err := strconv.ParseFloat(string(b), 64)
		*s = Scalar{raw: string(b), valid: true, number: err == nil}
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	switch {
	case !s.valid:
		return []byte("null"), nil
	case s.number:
		return []byte(s.raw), nil
	default:
		return json.Marshal(s.raw)
	}
}

// Valid reports whether the value was present and not null.
func (s Scalar) Valid() bool { return s.valid }

// String returns the value as text. Numbers are printed in their shortest
// form, so 7 and 7.0 both read "7". Null reads "".
func (s Scalar) String() string {
	if !s.valid {
		return ""
	}
	if s.number {
		f, _ := strconv.ParseFloat(s.raw, 64)
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s.raw
}

// Text is a JSON text field that also accepts numbers and bools, kept as
// their literal text. Objects and arrays read as empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var s Scalar
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	*t = Text(s.raw)
	return nil
}

// NewText returns a pointer to s as Text.
func NewText(s string) *Text {
	t := Text(s)
	return &t
}

// LeadManager is one book-running lead manager of an issue.
type LeadManager struct {
	ID           Scalar `json:"id"`
	Name         Text   `json:"name"`
	AboutSection *Text  `json:"about_section,omitempty"`
	Logo         *Text  `json:"logo,omitempty"`
	Address      *Text  `json:"address,omitempty"`
	Email        *Text  `json:"email,omitempty"`
	Phone        *Text  `json:"phone,omitempty"`
	Website      *Text  `json:"website,omitempty"`
}

// RemoteIPO is one record of the listing as the upstream API sends it.
type RemoteIPO struct {
	ID            Scalar        `json:"id"`
	Name          *Text         `json:"name"`
	Open          *Text         `json:"open"`
	Close         *Text         `json:"close"`
	StartTime     *Text         `json:"start_time,omitempty"`
	EndTime       *Text         `json:"end_time,omitempty"`
	ScriptCode    *Text         `json:"script_code,omitempty"`
	IconURL       *Text         `json:"icon_url,omitempty"`
	MinPrice      Scalar        `json:"min_price"`
	MaxPrice      Scalar        `json:"max_price"`
	LotSize       Scalar        `json:"lot_size"`
	Premium       *Text         `json:"premium,omitempty"`
	AllotmentDate *Text         `json:"allotment_date,omitempty"`
	ListingDate   *Text         `json:"listing_date,omitempty"`
	AllotmentLink *Text         `json:"allotment_link,omitempty"`
	IsBuyer       Scalar        `json:"is_buyer"`
	IsSeller      Scalar        `json:"is_seller"`
	IsPreApply    Scalar        `json:"is_pre_apply"`
	IssueSize     *Text         `json:"issue_size,omitempty"`
	CurrentStatus *Text         `json:"current_status"`
	IPOType       *Text         `json:"ipo_type,omitempty"`
	ListingPrice  Scalar        `json:"listing_price"`
	Slug          *Text         `json:"slug,omitempty"`
	CreatedAt     *Text         `json:"created_at"`
	UpdatedAt     *Text         `json:"updated_at,omitempty"`
	LeadManagers  []LeadManager `json:"lead_managers,omitempty"`
}

// Pagination describes where a page sits in the whole listing.
type Pagination struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Listing is the response envelope of GET /ipos. Data stays raw so one
// malformed record cannot fail the page; see Records.
type Listing struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	Data       []json.RawMessage `json:"data"`
	Pagination *Pagination       `json:"pagination"`
}

// Records decodes every record of the page. A record that does not decode
// keeps the fields that do and is logged to logger.
func (l Listing) Records(logger *slog.Logger) []RemoteIPO {
	recs := make([]RemoteIPO, 0, len(l.Data))
	for i, raw := range l.Data {
		rec, err := decodeRecord(raw)
		if err != nil {
			logger.Warn("malformed ipo record",
				slog.Int("index", i),
				slog.String("id", rec.ID.String()),
				slog.String("error", err.Error()),
			)
		}
		recs = append(recs, rec)
	}
	return recs
}

// decodeRecord decodes one record. When the record as a whole fails, each
// field is decoded on its own and the ones that fail keep their zero value;
// the first error is returned with the salvaged record.
func decodeRecord(raw json.RawMessage) (RemoteIPO, error) {
	var rec RemoteIPO
	err := json.Unmarshal(raw, &rec)
	if err == nil {
		return rec, nil
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil {
		return RemoteIPO{}, err
	}
	rec = RemoteIPO{}
	for key, val := range fields {
		one, merr := json.Marshal(map[string]json.RawMessage{key: val})
		if merr != nil {
			continue
		}
		next := rec
		if json.Unmarshal(one, &next) == nil {
			rec = next
		}
	}
	return rec, err
}

// DecodeRecords reads raw records from b. It accepts a bare array, a
// single record or a full listing envelope. Only b that is not JSON of
// those shapes is an error; malformed records are salvaged and logged.
func DecodeRecords(b []byte) ([]RemoteIPO, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}

	if b[0] == '[' {
		var l Listing
		if err := json.Unmarshal(b, &l.Data); err != nil {
			return nil, err
		}
		return l.Records(slog.Default()), nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	if _, ok := fields["data"]; ok {
		var l Listing
		if err := json.Unmarshal(b, &l); err != nil {
			return nil, err
		}
		return l.Records(slog.Default()), nil
	}

	l := Listing{Data: []json.RawMessage{b}}
	return l.Records(slog.Default()), nil
}
