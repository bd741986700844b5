package detectors

import "testing"

func TestMissingFeeCheckFiresWhenFeeUnchecked(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
int 1
return
`)
	findings := findingsFor("missing-fee-check", missingFeeCheck{}.Run(ctx))
	if len(findings) == 0 {
		t.Fatalf("missing-fee-check: expected a finding when Fee is never mentioned")
	}
}

func TestMissingFeeCheckSilentWhenFeePinned(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
txn Fee
int 1000
==
assert
int 1
return
`)
	findings := findingsFor("missing-fee-check", missingFeeCheck{}.Run(ctx))
	if len(findings) != 0 {
		t.Errorf("missing-fee-check: got %d findings, want 0 once Fee is pinned", len(findings))
	}
}
