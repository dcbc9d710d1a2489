package tradingpost

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedObject builds a JSON object whose members keep their insertion
// order, which encoding/json does not do for maps. The zero value is an
// empty object. The first member that cannot be marshaled is reported by
// MarshalJSON.
type orderedObject struct {
	buf     bytes.Buffer
	members int
	err     error
}

// Set appends the member key with the JSON encoding of value.
func (o *orderedObject) Set(key string, value any) {
	if o.err != nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		o.err = fmt.Errorf("cannot marshal member %q: %w", key, err)
		return
	}
	rawKey, err := json.Marshal(key)
	if err != nil {
		o.err = fmt.Errorf("cannot marshal key %q: %w", key, err)
		return
	}
	if o.members == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	o.buf.Write(rawKey)
	o.buf.WriteByte(':')
	o.buf.Write(raw)
	o.members++
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.members == 0 {
		return []byte("{}"), nil
	}
	out := make([]byte, 0, o.buf.Len()+1)
	out = append(out, o.buf.Bytes()...)
	return append(out, '}'), nil
}
