package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   Params
		want Params
	}{
		{in: Params{}, want: Params{Page: 1, Limit: DefaultLimit}},
		{in: Params{Page: -3, Limit: 500}, want: Params{Page: 1, Limit: MaxLimit}},
		{in: Params{Page: 4, Limit: 20}, want: Params{Page: 4, Limit: 20}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Fatalf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 10}, 25)
	if meta.TotalPages != 3 || meta.Page != 2 || meta.Total != 25 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if empty := NewMeta(Params{}, 0); empty.TotalPages != 0 {
		t.Fatalf("expected zero pages, got %+v", empty)
	}
}
