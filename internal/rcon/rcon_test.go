package rcon

import (
	"reflect"
	"testing"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want []string
	}{
		{
			name: "two players",
			resp: "There are 2 of a max of 20 players online: Alice, Bob",
			want: []string{"Alice", "Bob"},
		},
		{
			name: "single player",
			resp: "There are 1 of a max of 20 players online: Steve",
			want: []string{"Steve"},
		},
		{
			name: "empty list",
			resp: "There are 0 of a max of 20 players online:",
			want: nil,
		},
		{
			name: "trailing whitespace and empty tokens",
			resp: "There are 2 of a max of 20 players online:  Alice ,, Bob , ",
			want: []string{"Alice", "Bob"},
		},
		{
			name: "missing marker parses as empty",
			resp: "Unknown command",
			want: nil,
		},
		{
			name: "empty response",
			resp: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.resp)
			want := make(map[string]bool)
			for _, n := range tt.want {
				want[n] = true
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.resp, got, want)
			}
		})
	}
}
