package tradingpost

import (
	"testing"
)

func TestOrderedObject(t *testing.T) {
	testCases := []struct {
		name    string
		members [][2]any
		want    string
	}{
		{"empty", nil, `{}`},
		{"lot order", [][2]any{{"quantity", 10}, {"price", G(1.5)}}, `{"quantity":10,"price":1.5}`},
		{"numeric keys", [][2]any{{"2", "b"}, {"100", "a"}}, `{"2":"b","100":"a"}`},
		{"escaped key", [][2]any{{`a"b`, 1}}, `{"a\"b":1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var o orderedObject
			for _, m := range tc.members {
				o.Set(m[0].(string), m[1])
			}
			got, err := o.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestOrderedObject_Error(t *testing.T) {
	var o orderedObject
	o.Set("a", func() {})
	o.Set("b", 1)
	if _, err := o.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() succeeded, want an error for an unsupported value")
	}
}

func TestOrderedObject_RepeatedMarshal(t *testing.T) {
	var o orderedObject
	o.Set("a", 1)
	first, _ := o.MarshalJSON()
	second, _ := o.MarshalJSON()
	if string(first) != string(second) {
		t.Errorf("MarshalJSON() changed between calls: %s then %s", first, second)
	}
}
