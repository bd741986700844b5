package teal

import "testing"

func TestLookupTransactionField(t *testing.T) {
	f, ok := LookupTransactionField("RekeyTo")
	if !ok || f != FieldRekeyTo {
		t.Fatalf("LookupTransactionField(RekeyTo) = %v, %v", f, ok)
	}
	if f.String() != "RekeyTo" {
		t.Errorf("String() = %q, want RekeyTo", f.String())
	}

	if _, ok := LookupTransactionField("NotAField"); ok {
		t.Errorf("LookupTransactionField(NotAField): expected not found")
	}
}

func TestLookupGlobalField(t *testing.T) {
	f, ok := LookupGlobalField("GroupSize")
	if !ok || f != GlobalGroupSize {
		t.Fatalf("LookupGlobalField(GroupSize) = %v, %v", f, ok)
	}
	if f.String() != "GroupSize" {
		t.Errorf("String() = %q, want GroupSize", f.String())
	}
}

func TestLookupOnCompletion(t *testing.T) {
	cases := map[string]OnCompletion{
		"NoOp":              NoOp,
		"OptIn":             OptIn,
		"CloseOut":          CloseOut,
		"ClearState":        ClearState,
		"UpdateApplication": UpdateApplication,
		"DeleteApplication": DeleteApplication,
	}
	for name, want := range cases {
		got, ok := LookupOnCompletion(name)
		if !ok || got != want {
			t.Errorf("LookupOnCompletion(%q) = %v, %v; want %v", name, got, ok, want)
		}
		if got.String() != name {
			t.Errorf("OnCompletion(%v).String() = %q, want %q", got, got.String(), name)
		}
	}
}

func TestLookupTypeEnum(t *testing.T) {
	cases := map[string]TypeEnum{
		"pay":    TypePay,
		"keyreg": TypeKeyreg,
		"acfg":   TypeAcfg,
		"axfer":  TypeAxfer,
		"afrz":   TypeAfrz,
		"appl":   TypeAppl,
	}
	for name, want := range cases {
		got, ok := LookupTypeEnum(name)
		if !ok || got != want {
			t.Errorf("LookupTypeEnum(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := LookupTypeEnum("nonexistent"); ok {
		t.Errorf("LookupTypeEnum(nonexistent): expected not found")
	}
}
