// Package telemetry decodes the drone's state datagrams.
//
// A datagram is a list of key:value fields separated by ';', for example
//
//	pitch:0;roll:0;yaw:0;vgx:0;vgy:0;vgz:0;templ:74;temph:76;tof:10;h:0;bat:81;baro:70.96;time:0;agx:3.00;agy:-3.00;agz:-1000.00;
//
// Values holding a ',' are lists. Values that read as decimal numbers become numbers, anything
// else is kept as text. Parsing never fails: fields without a ':' are dropped.
package telemetry

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/einherij/tellosdk/pkg/vector"
)

type Kind uint8

const (
	KindNumber Kind = iota + 1
	KindText
	KindList
)

// Value is a decoded field value: a number, a text or a list of numbers and texts.
type Value struct {
	kind Kind
	num  float64
	text string
	list []Value
}

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func Text(s string) Value { return Value{kind: KindText, text: s} }

func List(values ...Value) Value { return Value{kind: KindList, list: values} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// List returns the sub-values of a list value, nil otherwise.
func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value(nil), v.list...)
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindList:
		parts := make([]string, len(v.list))
		for i, sub := range v.list {
			parts[i] = sub.String()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// Record is one decoded state datagram.
type Record map[string]Value

var decimal = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// Decode turns raw socket bytes into text. It is the only place raw buffers are handled.
func Decode(raw []byte) string {
	return string(raw)
}

// ParseDatagram decodes and parses one datagram.
func ParseDatagram(raw []byte) Record {
	return Parse(Decode(raw))
}

// Parse decodes a state line. Later duplicates of a key replace earlier ones.
func Parse(text string) Record {
	record := make(Record)
	for _, segment := range strings.Split(text, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, valueText, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		if strings.Contains(valueText, ",") {
			subs := strings.Split(valueText, ",")
			values := make([]Value, len(subs))
			for i, sub := range subs {
				values[i] = scalar(sub)
			}
			record[key] = List(values...)
			continue
		}
		record[key] = scalar(valueText)
	}
	return record
}

func scalar(text string) Value {
	trimmed := strings.TrimSpace(text)
	if decimal.MatchString(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(f)
		}
	}
	return Text(text)
}

// Keys returns the field names, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Int returns a numeric field truncated toward zero.
func (r Record) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	return int(f), ok
}

func (r Record) Text(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	return v.String(), true
}

func (r Record) List(key string) []Value {
	return r[key].List()
}

// Vector reads a three element numeric list such as mpry.
func (r Record) Vector(key string) (vector.V3D, bool) {
	list := r.List(key)
	if len(list) != 3 {
		return vector.V3D{}, false
	}
	var v vector.V3D
	for i, sub := range list {
		f, ok := sub.Float()
		if !ok {
			return vector.V3D{}, false
		}
		v[i] = f
	}
	return v, true
}
