package detectors

import "testing"

func TestSenderAccessFiresOnAccountsZero(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
txna Accounts 0
pop
int 1
return
`)
	findings := findingsFor("sender-access", senderAccess{}.Run(ctx))
	if len(findings) == 0 {
		t.Fatalf("sender-access: expected a finding for txna Accounts 0")
	}
}

func TestSenderAccessSilentOnOtherAccountsIndex(t *testing.T) {
	ctx := analyze(t, `#pragma version 6
txna Accounts 1
pop
int 1
return
`)
	findings := findingsFor("sender-access", senderAccess{}.Run(ctx))
	if len(findings) != 0 {
		t.Errorf("sender-access: got %d findings, want 0 for txna Accounts 1", len(findings))
	}
}
