package detectors

import "testing"

func TestConstantGtxnFiresOnLiteralIndexThroughGtxns(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
int 1
gtxns Sender
pop
int 1
return
`)
	findings := findingsFor("constant-gtxn", constantGtxn{}.Run(ctx))
	if len(findings) == 0 {
		t.Fatalf("constant-gtxn: expected a finding for int <literal>; gtxns")
	}
}

func TestConstantGtxnSilentWhenIndexAlreadyComputed(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
txn GroupIndex
int 1
-
gtxns Sender
pop
int 1
return
`)
	findings := findingsFor("constant-gtxn", constantGtxn{}.Run(ctx))
	if len(findings) != 0 {
		t.Errorf("constant-gtxn: got %d findings, want 0 when the gtxns index is not a literal immediately before it", len(findings))
	}
}
