package compensation

import (
	"errors"
	"testing"
)

func TestComputeNetSalary(t *testing.T) {
	// dailyRate = 12000/22, attendanceDeduction ~= 1295.45
	// net = 12000 - 500 - 1000 - 1295.45 ~= 9204.55
	net, err := ComputeNetSalary(
		NewMoneyFromInt(12000),
		NewMoneyFromInt(500),
		NewMoneyFromInt(1000),
		att(22, 20, 2, 3),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := net.StringFixed(2); got != "9204.55" {
		t.Errorf("got %s, want 9204.55", got)
	}
}

func TestComputeNetSalary_MayBeNegative(t *testing.T) {
	// Advances exceeding the salary are not clamped: callers may treat a
	// negative net as an error or a flag, the engine only reports it.
	net, err := ComputeNetSalary(
		NewMoneyFromInt(1000),
		ZeroMoney(),
		NewMoneyFromInt(2000),
		att(22, 22, 0, 0),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.IsNegative() {
		t.Errorf("expected negative net salary, got %s", net)
	}
	if got := net.StringFixed(2); got != "-1000.00" {
		t.Errorf("got %s, want -1000.00", got)
	}
}

func TestComputeNetSalary_Validation(t *testing.T) {
	tests := []struct {
		name                    string
		base, deductions, advances Money
		att                     AttendanceRecord
	}{
		{"zero salary", ZeroMoney(), ZeroMoney(), ZeroMoney(), att(22, 22, 0, 0)},
		{"negative deductions", NewMoneyFromInt(5000), NewMoneyFromInt(-1), ZeroMoney(), att(22, 22, 0, 0)},
		{"negative advances", NewMoneyFromInt(5000), ZeroMoney(), NewMoneyFromInt(-1), att(22, 22, 0, 0)},
		{"bad attendance", NewMoneyFromInt(5000), ZeroMoney(), ZeroMoney(), att(0, 0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeNetSalary(tc.base, tc.deductions, tc.advances, tc.att)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPayrollLine_ApplyRecomputes(t *testing.T) {
	line, err := NewPayrollLine("line-1", "emp-1",
		NewMoneyFromInt(12000), NewMoneyFromInt(500), NewMoneyFromInt(1000),
		att(22, 20, 2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dropping the advance must recompute net from scratch, not adjust it.
	noAdvance := ZeroMoney()
	updated, err := line.Apply(LineUpdate{Advances: &noAdvance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := updated.NetSalary.StringFixed(2); got != "10204.55" {
		t.Errorf("got %s, want 10204.55", got)
	}
	// The receiver is a snapshot; the original line is untouched.
	if got := line.NetSalary.StringFixed(2); got != "9204.55" {
		t.Errorf("original line mutated: %s", got)
	}
}

func TestPayrollLine_ApplyRejectsBadMerge(t *testing.T) {
	line, err := NewPayrollLine("line-1", "emp-1",
		NewMoneyFromInt(8000), ZeroMoney(), ZeroMoney(), att(22, 22, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := NewMoneyFromInt(-50)
	if _, err := line.Apply(LineUpdate{FixedDeductions: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
