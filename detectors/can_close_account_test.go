package detectors

import "testing"

func TestCanCloseAccountFiresWhenCloseRemainderToUnchecked(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
int 1
return
`)
	findings := findingsFor("can-close-account", canCloseAccount{}.Run(ctx))
	if len(findings) == 0 {
		t.Fatalf("can-close-account: expected a finding when CloseRemainderTo is never mentioned")
	}
}

func TestCanCloseAccountSilentWhenPinnedToZeroAddress(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
txn CloseRemainderTo
global ZeroAddress
==
assert
int 1
return
`)
	findings := findingsFor("can-close-account", canCloseAccount{}.Run(ctx))
	if len(findings) != 0 {
		t.Errorf("can-close-account: got %d findings, want 0 once CloseRemainderTo is pinned", len(findings))
	}
}
