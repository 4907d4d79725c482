package change

import (
	"encoding/json"

	"github.com/textkit/textkit/internal/text"
)

// ToJSON renders cs in the compact alternating array form from spec.md §6:
// a run of N keeps N, a deletion of N with no insert -N, and a
// delete-and-replace [N, "ins"]. Every non-empty keep is emitted, the
// trailing one included, so the keeps and deletes sum to lenA; only
// zero-length keeps are dropped.
func (cs ChangeSet) ToJSON() []any {
	var out []any
	ci := 0
	for _, s := range cs.sections {
		if !s.isChange {
			if s.n != 0 {
				out = append(out, s.n)
			}
			continue
		}
		ins := cs.inserted[ci]
		ci++
		switch {
		case s.insLen == 0:
			out = append(out, -s.n)
		case s.n == 0:
			out = append(out, []any{0, ins.ToJSON()})
		default:
			out = append(out, []any{s.n, ins.ToJSON()})
		}
	}
	return out
}

// MarshalJSON satisfies json.Marshaler using the ToJSON array form.
func (cs ChangeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.ToJSON())
}

// FromJSON reconstructs a ChangeSet from its ToJSON array form, given the
// document length it is meant to apply against.
func FromJSON(raw []any, docLen int) (ChangeSet, error) {
	var specs []Spec
	cursor := 0
	for _, item := range raw {
		if f, ok := item.(float64); ok {
			item = int(f)
		}
		switch v := item.(type) {
		case int:
			n := v
			if n >= 0 {
				cursor += n
				continue
			}
			specs = append(specs, Spec{From: cursor, To: cursor - n, Insert: text.Empty()})
			cursor -= n
		case []any:
			if len(v) != 2 {
				return ChangeSet{}, ErrInvalidChange
			}
			var delLen int
			switch d := v[0].(type) {
			case float64:
				delLen = int(d)
			case int:
				delLen = d
			default:
				return ChangeSet{}, ErrInvalidChange
			}
			lines, ok := asStringSlice(v[1])
			if !ok {
				return ChangeSet{}, ErrInvalidChange
			}
			ins, err := text.Of(lines)
			if err != nil {
				return ChangeSet{}, err
			}
			from := cursor
			to := cursor + delLen
			specs = append(specs, Spec{From: from, To: to, Insert: ins})
			cursor = to
		default:
			return ChangeSet{}, ErrInvalidChange
		}
	}
	return Of(specs, docLen)
}

// UnmarshalJSON parses bytes produced by MarshalJSON. Since the array form
// alone doesn't carry docLen, this assumes the change spans the full
// document (lenA equal to the sum of all keeps and deletes); callers that
// need a specific docLen should use FromJSON directly.
func (cs *ChangeSet) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	docLen := 0
	for _, item := range raw {
		switch v := item.(type) {
		case float64:
			n := int(v)
			if n >= 0 {
				docLen += n
			} else {
				docLen += -n
			}
		case []any:
			if len(v) == 2 {
				if n, ok := v[0].(float64); ok {
					docLen += int(n)
				}
			}
		}
	}
	parsed, err := FromJSON(raw, docLen)
	if err != nil {
		return err
	}
	*cs = parsed
	return nil
}

func asStringSlice(v any) ([]string, bool) {
	if ss, ok := v.([]string); ok {
		return ss, true
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
