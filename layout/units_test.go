package layout

import (
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
	}{
		{"10mm", Length{Value: 10, Unit: UnitMM}},
		{"1.5cm", Length{Value: 1.5, Unit: UnitCM}},
		{"2in", Length{Value: 2, Unit: UnitIN}},
		{"12pt", Length{Value: 12, Unit: UnitPT}},
		{"7", Length{Value: 7, Unit: UnitNone}},
		{" 3MM ", Length{Value: 3, Unit: UnitMM}},
		{"", Length{}},
		{"abc", Length{}},
	}
	for _, tc := range cases {
		if got := ParseLength(tc.in); got != tc.want {
			t.Fatalf("ParseLength(%q) = %+v，期望 %+v", tc.in, got, tc.want)
		}
	}
}

func TestLengthConversions(t *testing.T) {
	if got := (Length{Value: 1.5, Unit: UnitCM}).ToMM(); !near(got, 15) {
		t.Fatalf("1.5cm 应为 15mm，实际 %g", got)
	}
	if got := (Length{Value: 2, Unit: UnitIN}).ToMM(); !near(got, 50.8) {
		t.Fatalf("2in 应为 50.8mm，实际 %g", got)
	}
	if got := (Length{Value: 12, Unit: UnitPT}).ToMM(); !near(got, 12*PtToMm) {
		t.Fatalf("12pt 换算错误: %g", got)
	}
	// pt 往返
	mm := Length{Value: 12, Unit: UnitPT}.ToMM()
	if got := (Length{Value: mm, Unit: UnitMM}).ToPT(); math.Abs(got-12) > 1e-9 {
		t.Fatalf("pt 往返误差过大: %g", got)
	}
	if !(Length{}).IsZero() || (Length{Value: 1}).IsZero() {
		t.Fatalf("IsZero 判断错误")
	}
}
