package calc

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2+3*4", "14"},
		{"2 + 3 * 4", "14"},
		{"(1+2)*3", "9"},
		{"10/4", "2.5"},
		{"8/2", "4.0"},
		{"2**10", "1024"},
		{"2**3**2", "512"},
		{"-2**2", "-4"},
		{"2**-1", "0.5"},
		{"1**100000", "1"},
		{"(-1)**100001", "-1"},
		{"0**70000", "0"},
		{"7%3", "1"},
		{"-7%3", "2"},
		{"7%-3", "-2"},
		{"1.5*2", "3.0"},
		{"0.1+0.2", "0.30000000000000004"},
		{"--3", "3"},
		{"1_000+1", "1001"},
		{"1e3", "1000.0"},
		{"99999999999999999999*10", "999999999999999999990"},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expr)
		if err != nil {
			t.Errorf("Evaluate(%q) error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestEvaluateRejects(t *testing.T) {
	for _, expr := range []string{
		"import os",
		"__import__('os').system('ls')",
		"",
		"1/0",
		"5%0",
		"+5",
		"2//3",
		"(1+2",
		"1+",
		"abs(-1)",
		"007",
		"2**100000",
		"(9**10000)**3000",
		"(9**10000)**10000",
		"((9**10000)**10000)**10000",
		"2**99999999999999999999",
		"(4**20000)*(4**20000)",
		"0**-1",
	} {
		if _, err := Evaluate(expr); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("Evaluate(%q) error = %v, want ErrInvalidExpression", expr, err)
		}
	}
}
