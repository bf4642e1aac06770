/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package query

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/iancoleman/orderedmap"
)

// Undefined is the parameter value spelled `undefined` in query text.
// It marks an optional parameter that a case leaves unset.
//
//nolint:gochecknoglobals // sentinel value
var Undefined = undefined{}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// MarshalJSON reports undefined values as null in JSON documents.
func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Param is one name/value pair of a case's parameters.
type Param struct {
	Key   string
	Value any
}

// P is shorthand for Param{Key: key, Value: value}.
func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

// Params is an ordered, immutable parameter record. Two records are equal when
// they hold the same key/value pairs, whatever their order.
// The zero value is the empty record.
type Params struct {
	m *orderedmap.OrderedMap
}

// NewParams builds a parameter record. Numbers are normalized to float64 and
// composite values to their JSON form, so that records built in Go compare
// equal to records parsed from query text. A repeated key keeps its first
// position and its last value.
func NewParams(ps ...Param) Params {
	m := orderedmap.New()
	for _, p := range ps {
		m.Set(p.Key, normalize(p.Value))
	}

	return Params{m: m}
}

// Len returns the number of parameters.
func (p Params) Len() int {
	if p.m == nil {
		return 0
	}

	return len(p.m.Keys())
}

// Keys returns the parameter names in order.
func (p Params) Keys() []string {
	if p.m == nil {
		return nil
	}

	return clone(p.m.Keys())
}

// Get returns the value of a parameter.
func (p Params) Get(key string) (any, bool) {
	if p.m == nil {
		return nil, false
	}

	return p.m.Get(key)
}

// Merge returns a record holding the parameters of p followed by those of other.
// Values from other win on conflicting keys.
func (p Params) Merge(other Params) Params {
	ps := make([]Param, 0, p.Len()+other.Len())

	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		ps = append(ps, P(k, v))
	}

	for _, k := range other.Keys() {
		v, _ := other.Get(k)
		ps = append(ps, P(k, v))
	}

	return NewParams(ps...)
}

// Equal reports whether both records hold exactly the same key/value pairs.
func (p Params) Equal(other Params) bool {
	if p.Len() != other.Len() {
		return false
	}

	for _, k := range p.Keys() {
		a, _ := p.Get(k)

		b, ok := other.Get(k)
		if !ok || !cmp.Equal(a, b) {
			return false
		}
	}

	return true
}

// String returns the parameters as "k=v&k2=v2", values written as JSON literals
// or `undefined`.
func (p Params) String() string {
	parts := make([]string, 0, p.Len())

	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		parts = append(parts, k+"="+formatValue(v))
	}

	return strings.Join(parts, paramSeparator)
}

// Key returns a string identifying the record whatever its key order: equal
// records have equal keys.
func (p Params) Key() string {
	keys := p.Keys()
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))

	for _, k := range keys {
		v, _ := p.Get(k)
		parts = append(parts, k+"="+formatValue(v))
	}

	return strings.Join(parts, paramSeparator)
}

// MarshalJSON implements json.Marshaler, keeping parameter order.
func (p Params) MarshalJSON() ([]byte, error) {
	if p.m == nil {
		return []byte("{}"), nil
	}

	return p.m.MarshalJSON()
}

// formatValue writes a value as a JSON literal. encoding/json escapes '&', so a
// string value never contains the parameter separator.
func formatValue(v any) string {
	if _, ok := v.(undefined); ok {
		return Undefined.String()
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(b)
}

func parseValue(s string) (any, error) {
	if s == Undefined.String() {
		return Undefined, nil
	}

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}

	return v, nil
}

// normalize converts a Go value into the representation parsing produces.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, string, undefined:
		return x
	case float64:
		return finite(x)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive // everything else goes through JSON
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}

	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("query: parameter value %v is not a JSON value: %v", v, err))
	}

	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("query: parameter value %v is not a JSON value: %v", v, err))
	}

	return out
}

// finite panics on NaN and infinities, which have no JSON literal.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("query: parameter value %v is not a JSON value", f))
	}

	return f
}
