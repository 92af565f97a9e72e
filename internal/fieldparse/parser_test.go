package fieldparse

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Answer
	}{
		{
			name: "single answer",
			raw:  "12: vegetarian",
			want: []Answer{{FieldID: 12, Value: "vegetarian"}},
		},
		{
			name: "multiple lines",
			raw:  "12: vegetarian\n7: L\n3: yes",
			want: []Answer{
				{FieldID: 12, Value: "vegetarian"},
				{FieldID: 7, Value: "L"},
				{FieldID: 3, Value: "yes"},
			},
		},
		{
			name: "value trimmed",
			raw:  "5:   spaced out  ",
			want: []Answer{{FieldID: 5, Value: "spaced out"}},
		},
		{
			name: "empty value kept",
			raw:  "9:",
			want: []Answer{{FieldID: 9, Value: ""}},
		},
		{
			name: "value with internal punctuation",
			raw:  "4: Yes, please: twice",
			want: []Answer{{FieldID: 4, Value: "Yes, please: twice"}},
		},
		{
			name: "non-numeric key skipped",
			raw:  "abc: nope\n2: ok",
			want: []Answer{{FieldID: 2, Value: "ok"}},
		},
		{
			name: "empty blob",
			raw:  "",
			want: nil,
		},
		{
			name: "no colons",
			raw:  "just some text",
			want: nil,
		},
		{
			name: "numeric overflow skipped",
			raw:  "99999999999999999999: huge\n1: fine",
			want: []Answer{{FieldID: 1, Value: "fine"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
