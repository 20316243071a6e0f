package progression

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// IntSet is a set of module indices persisted as a JSON array. Using a real
// set type keeps fields like unlocked_modules deduplicated at the type level
// instead of relying on call sites to dedupe arrays.
type IntSet map[int]struct{}

// NewIntSet builds a set from the given values.
func NewIntSet(values ...int) IntSet {
	s := make(IntSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s IntSet) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Add inserts v and reports whether the set changed.
func (s IntSet) Add(v int) bool {
	if s.Has(v) {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s IntSet) Remove(v int) {
	delete(s, v)
}

// Union returns a new set containing the members of both sets.
func (s IntSet) Union(other IntSet) IntSet {
	out := make(IntSet, len(s)+len(other))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range other {
		out[v] = struct{}{}
	}
	return out
}

// Values returns the members in ascending order.
func (s IntSet) Values() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func (s IntSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *IntSet) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewIntSet(values...)
	return nil
}

// Value implements driver.Valuer so GORM stores the set as a JSON column.
func (s IntSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *IntSet) Scan(src interface{}) error {
	if src == nil {
		*s = IntSet{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("progression: cannot scan %T into IntSet", src)
	}
}

// StringSet is a set of lesson/stage identifiers persisted as a JSON array.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Add inserts v and reports whether the set changed.
func (s StringSet) Add(v string) bool {
	if s.Has(v) {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s StringSet) Remove(v string) {
	delete(s, v)
}

// Values returns the members in lexical order.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

func (s StringSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(src interface{}) error {
	if src == nil {
		*s = StringSet{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("progression: cannot scan %T into StringSet", src)
	}
}
