package model

import "testing"

// TestUpdateRecordString tests the rendered form of a record.
func TestUpdateRecordString(t *testing.T) {
	t.Parallel()

	r := UpdateRecord{Title: "12:00", Body: "Hello"}
	if got := r.String(); got != "12:00: Hello" {
		t.Errorf("got %q, expected %q", got, "12:00: Hello")
	}
}

// TestUpdateRecordSameEntry tests that identity is decided by body only.
func TestUpdateRecordSameEntry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a, b     UpdateRecord
		expected bool
	}{
		{"same body different title", UpdateRecord{"12:00", "Hello"}, UpdateRecord{"13:00", "Hello"}, true},
		{"different body same title", UpdateRecord{"12:00", "Hello"}, UpdateRecord{"12:00", "World"}, false},
		{"case differs", UpdateRecord{"12:00", "Hello"}, UpdateRecord{"12:00", "hello"}, false},
		{"inner whitespace differs", UpdateRecord{"", "a b"}, UpdateRecord{"", "a  b"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.SameEntry(tc.b); got != tc.expected {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestReverse tests chronological reordering.
func TestReverse(t *testing.T) {
	t.Parallel()

	t.Run("reverses newest-first into oldest-first", func(t *testing.T) {
		t.Parallel()

		in := []UpdateRecord{{Body: "C"}, {Body: "B"}, {Body: "A"}}
		out := Reverse(in)

		want := []string{"A", "B", "C"}
		for i, w := range want {
			if out[i].Body != w {
				t.Errorf("index %d: got %q, expected %q", i, out[i].Body, w)
			}
		}
		if in[0].Body != "C" {
			t.Error("input slice should not be modified")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		if out := Reverse(nil); len(out) != 0 {
			t.Errorf("expected empty result, got %d records", len(out))
		}
	})
}
