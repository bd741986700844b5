package teal

// ImmediateKind tags the semantic type an opcode's immediate operand parses
// to, per spec.md §4.1.
type ImmediateKind int

const (
	ImmUint64 ImmediateKind = iota
	ImmByteLiteral
	ImmLabel
	ImmNamedField
	ImmSubroutineLabel
)

// StackEffect is an opcode's (pop, push) arity. When Variadic is set, Pops
// is a function of the instruction's immediates instead of a constant; the
// catalogue records the base arity and callers that need the exact arity
// for a specific instruction use Instruction.StackEffect.
type StackEffect struct {
	Pops     int
	Pushes   int
	Variadic bool
}

// OpcodeDef is the catalogue entry for one target-language mnemonic (C1).
type OpcodeDef struct {
	Name         string
	IntroducedIn int
	Effect       StackEffect
	Immediates   []ImmediateKind
	IsTerminator bool
	IsBranch     bool
	IsCallsub    bool
	IsRetsub     bool
	IsErr        bool
	// NumBranchTargets is how many of Immediates are ImmLabel operands
	// that are jump/branch targets (as opposed to, say, callsub's target,
	// which is also ImmLabel but handled via IsCallsub).
	NumBranchTargets int
}

// Catalogue is the closed opcode table, keyed by mnemonic. It is built once
// at init time and never mutated afterwards.
var Catalogue = buildCatalogue()

func op(name string, introduced int, pops, pushes int, imms ...ImmediateKind) OpcodeDef {
	return OpcodeDef{Name: name, IntroducedIn: introduced, Effect: StackEffect{Pops: pops, Pushes: pushes}, Immediates: imms}
}

func buildCatalogue() map[string]OpcodeDef {
	c := map[string]OpcodeDef{}
	add := func(d OpcodeDef) { c[d.Name] = d }

	// stack / arithmetic / logic
	add(op("err", 1, 0, 0))
	c["err"] = withFlags(c["err"], func(d *OpcodeDef) { d.IsTerminator = true; d.IsErr = true })
	add(op("sha256", 1, 1, 1))
	add(op("keccak256", 1, 1, 1))
	add(op("sha512_256", 1, 1, 1))
	add(op("ed25519verify", 1, 3, 1))
	add(op("+", 1, 2, 1))
	add(op("-", 1, 2, 1))
	add(op("/", 1, 2, 1))
	add(op("*", 1, 2, 1))
	add(op("<", 1, 2, 1))
	add(op(">", 1, 2, 1))
	add(op("<=", 1, 2, 1))
	add(op(">=", 1, 2, 1))
	add(op("&&", 1, 2, 1))
	add(op("||", 1, 2, 1))
	add(op("==", 1, 2, 1))
	add(op("!=", 1, 2, 1))
	add(op("!", 1, 1, 1))
	add(op("len", 1, 1, 1))
	add(op("itob", 1, 1, 1))
	add(op("btoi", 1, 1, 1))
	add(op("%", 1, 2, 1))
	add(op("|", 1, 2, 1))
	add(op("&", 1, 2, 1))
	add(op("^", 1, 2, 1))
	add(op("~", 1, 1, 1))
	add(op("mulw", 1, 2, 2))
	add(op("addw", 2, 2, 2))
	add(op("divmodw", 4, 4, 2))
	add(op("concat", 2, 2, 1))
	add(op("substring", 2, 1, 1, ImmUint64, ImmUint64))
	add(op("substring3", 2, 3, 1))
	add(op("getbit", 3, 2, 1))
	add(op("setbit", 3, 3, 1))
	add(op("getbyte", 3, 2, 1))
	add(op("setbyte", 3, 3, 1))
	add(op("dup", 1, 1, 2))
	add(op("dup2", 2, 2, 4))
	add(op("dig", 3, 0, 1, ImmUint64))
	add(op("swap", 3, 2, 2))
	add(op("select", 3, 3, 1))
	add(op("pop", 1, 1, 0))
	add(op("cover", 5, 0, 0, ImmUint64))
	add(op("uncover", 5, 0, 0, ImmUint64))

	// constants / literals
	add(op("int", 1, 0, 1, ImmUint64))
	add(op("byte", 1, 0, 1, ImmByteLiteral))
	add(op("addr", 1, 0, 1, ImmByteLiteral))
	add(op("method", 1, 0, 1, ImmByteLiteral))
	add(op("pushint", 3, 0, 1, ImmUint64))
	add(op("pushbytes", 3, 0, 1, ImmByteLiteral))
	add(op("intcblock", 1, 0, 0))
	add(op("intc", 1, 0, 1, ImmUint64))
	add(op("intc_0", 1, 0, 1))
	add(op("intc_1", 1, 0, 1))
	add(op("intc_2", 1, 0, 1))
	add(op("intc_3", 1, 0, 1))
	add(op("bytecblock", 1, 0, 0))
	add(op("bytec", 1, 0, 1, ImmUint64))
	add(op("bytec_0", 1, 0, 1))
	add(op("bytec_1", 1, 0, 1))
	add(op("bytec_2", 1, 0, 1))
	add(op("bytec_3", 1, 0, 1))

	// control flow
	add(withFlags(op("bnz", 1, 1, 0, ImmLabel), func(d *OpcodeDef) { d.IsBranch = true; d.NumBranchTargets = 1 }))
	add(withFlags(op("bz", 1, 1, 0, ImmLabel), func(d *OpcodeDef) { d.IsBranch = true; d.NumBranchTargets = 1 }))
	add(withFlags(op("b", 1, 0, 0, ImmLabel), func(d *OpcodeDef) { d.IsBranch = true; d.IsTerminator = true; d.NumBranchTargets = 1 }))
	add(withFlags(op("return", 1, 1, 0), func(d *OpcodeDef) { d.IsTerminator = true }))
	add(withFlags(op("callsub", 4, 0, 0, ImmSubroutineLabel), func(d *OpcodeDef) { d.IsBranch = true; d.IsCallsub = true; d.NumBranchTargets = 1 }))
	add(withFlags(op("retsub", 4, 0, 0), func(d *OpcodeDef) { d.IsBranch = true; d.IsTerminator = true; d.IsRetsub = true }))
	add(withFlags(op("switch", 8, 1, 0), func(d *OpcodeDef) { d.IsBranch = true; d.Effect.Variadic = true }))
	add(withFlags(op("match", 8, 0, 0), func(d *OpcodeDef) { d.IsBranch = true; d.Effect.Variadic = true }))
	add(op("assert", 3, 1, 0))

	// transaction / group / global field access
	add(op("txn", 1, 0, 1, ImmNamedField))
	add(op("gtxn", 1, 0, 1, ImmUint64, ImmNamedField))
	add(op("txna", 2, 0, 1, ImmNamedField, ImmUint64))
	add(op("gtxna", 2, 0, 1, ImmUint64, ImmNamedField, ImmUint64))
	add(op("gtxns", 3, 1, 1, ImmNamedField))
	add(op("gtxnsa", 3, 1, 1, ImmNamedField, ImmUint64))
	add(op("txnas", 5, 1, 1, ImmNamedField))
	add(op("gtxnas", 5, 1, 1, ImmUint64, ImmNamedField))
	add(op("gtxnsas", 5, 2, 1, ImmNamedField))
	add(op("global", 1, 0, 1, ImmNamedField))
	add(op("gaid", 4, 0, 1, ImmUint64))
	add(op("gaids", 4, 1, 1))
	add(op("gload", 4, 0, 1, ImmUint64, ImmUint64))
	add(op("gloads", 4, 1, 1, ImmUint64))
	add(op("gloadss", 6, 2, 1))

	// application / asset / account state
	add(op("app_global_get", 2, 1, 1))
	add(op("app_global_get_ex", 2, 2, 2))
	add(op("app_global_put", 2, 2, 0))
	add(op("app_global_del", 2, 1, 0))
	add(op("app_local_get", 2, 2, 1))
	add(op("app_local_get_ex", 2, 3, 2))
	add(op("app_local_put", 2, 3, 0))
	add(op("app_local_del", 2, 2, 0))
	add(op("app_opted_in", 2, 2, 1))
	add(op("asset_holding_get", 2, 2, 2, ImmNamedField))
	add(op("asset_params_get", 2, 1, 2, ImmNamedField))
	add(op("app_params_get", 5, 1, 2, ImmNamedField))
	add(op("acct_params_get", 6, 1, 2, ImmNamedField))
	add(op("balance", 2, 1, 1))
	add(op("min_balance", 3, 1, 1))
	add(op("arg", 1, 0, 1, ImmUint64))
	add(op("args", 5, 1, 1))

	// inner transactions / logs
	add(op("log", 5, 1, 0))
	add(op("itxn_begin", 5, 0, 0))
	add(op("itxn_next", 6, 0, 0))
	add(op("itxn_field", 5, 1, 0, ImmNamedField))
	add(op("itxn_submit", 5, 0, 0))
	add(op("itxn", 5, 0, 1, ImmNamedField))
	add(op("itxna", 5, 0, 1, ImmNamedField, ImmUint64))
	add(op("gitxn", 6, 0, 1, ImmUint64, ImmNamedField))

	// loads/stores, misc
	add(op("load", 1, 0, 1, ImmUint64))
	add(op("store", 1, 1, 0, ImmUint64))
	add(op("loads", 5, 1, 1))
	add(op("stores", 5, 2, 0))
	add(op("frame_dig", 8, 0, 1, ImmUint64))
	add(op("frame_bury", 8, 1, 1, ImmUint64))
	add(op("proto", 8, 0, 0, ImmUint64, ImmUint64))

	return c
}

func withFlags(d OpcodeDef, f func(*OpcodeDef)) OpcodeDef {
	f(&d)
	return d
}

// Lookup returns the catalogue entry for a mnemonic.
func Lookup(mnemonic string) (OpcodeDef, bool) {
	d, ok := Catalogue[mnemonic]
	return d, ok
}
