package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CountSeries holds a name → count JSON object in the object's key order.
// The upstream service builds these objects in insertion order and the
// charts rely on that order, so a plain map is not usable here.
type CountSeries []NamedCount

func (s *CountSeries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("count series: expected object, got %v", tok)
	}
	out := CountSeries{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("count series: non-string key %v", keyTok)
		}
		var v int
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("count series %q: %w", key, err)
		}
		out = append(out, NamedCount{Name: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func (s CountSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type TrendCounts struct {
	Positive int `json:"POSITIVE"`
	Negative int `json:"NEGATIVE"`
	Neutral  int `json:"NEUTRAL"`
}

type TrendEntry struct {
	Date   string
	Counts TrendCounts
}

// TrendSeries holds the temporal_trends object in its date order.
type TrendSeries []TrendEntry

func (s *TrendSeries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("trend series: expected object, got %v", tok)
	}
	out := TrendSeries{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("trend series: non-string key %v", keyTok)
		}
		var counts TrendCounts
		if err := dec.Decode(&counts); err != nil {
			return fmt.Errorf("trend series %q: %w", date, err)
		}
		out = append(out, TrendEntry{Date: date, Counts: counts})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func (s TrendSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Date)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		counts, err := json.Marshal(e.Counts)
		if err != nil {
			return nil, err
		}
		buf.Write(counts)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
