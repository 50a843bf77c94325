package core

import "testing"

func TestNormalizeCell(t *testing.T) {
	both := ParseConfig{ConvertNullSentinel: true, ConvertEmptyStringSentinel: true}

	tests := []struct {
		name     string
		raw      string
		cfg      ParseConfig
		wantNull bool
		wantText string
	}{
		{"null upper", "NULL", both, true, ""},
		{"null lower", "null", both, true, ""},
		{"null mixed", "NuLl", both, true, ""},
		{"null disabled", "null", ParseConfig{}, false, "null"},
		{"emptystring", "EMPTYSTRING", both, false, ""},
		{"emptystring lower", "emptystring", both, false, ""},
		{"emptystring disabled", "emptystring", ParseConfig{}, false, "emptystring"},
		{"null only enabled leaves emptystring", "EmptyString", ParseConfig{ConvertNullSentinel: true}, false, "EmptyString"},
		{"not a sentinel", "nullable", both, false, "nullable"},
		{"padded token", " NULL", both, false, " NULL"},
		{"plain value", "x", both, false, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeCell(tt.raw, tt.cfg)
			if got.null != tt.wantNull {
				t.Errorf("null = %v, want %v", got.null, tt.wantNull)
			}
			if got.text != tt.wantText {
				t.Errorf("text = %q, want %q", got.text, tt.wantText)
			}
		})
	}
}
