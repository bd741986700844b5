package printers

import (
	"fmt"
	"sort"
	"strings"

	"go-tealer/cfg"
	"go-tealer/dataflow"
)

// fieldsInOrder keeps TransactionContext's output stable across runs.
var fieldsInOrder = []dataflow.Field{
	dataflow.GroupSize, dataflow.GroupIndex, dataflow.TypeEnum, dataflow.Sender,
	dataflow.Receiver, dataflow.CloseRemainderTo, dataflow.AssetCloseTo,
	dataflow.RekeyTo, dataflow.ApplicationID, dataflow.OnCompletion, dataflow.Fee,
}

// TransactionContext dumps, per block, the lattice value of every tracked
// field on exit from that block, for a human auditing why a detector did or
// didn't fire.
func TransactionContext(g *cfg.CFG) string {
	var b strings.Builder
	ids := make([]int, 0, len(g.Blocks))
	for _, blk := range g.Blocks {
		ids = append(ids, blk.ID)
	}
	sort.Ints(ids)

	for _, id := range ids {
		blk := g.Block(id)
		bc, ok := blk.Context.(*dataflow.BlockContext)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "B%d:\n", id)
		for _, f := range fieldsInOrder {
			fmt.Fprintf(&b, "  %s = %s\n", f, formatValue(bc.CurrentField(f)))
		}
	}
	return b.String()
}

func formatValue(v dataflow.Value) string {
	switch v.Kind {
	case dataflow.KindTop:
		return "⊤"
	case dataflow.KindBottom:
		return "⊥"
	default:
		parts := make([]string, 0, len(v.Set))
		for s := range v.Set {
			if s.IsBytes {
				parts = append(parts, fmt.Sprintf("%q", s.Bytes))
			} else {
				parts = append(parts, fmt.Sprintf("%d", s.Uint))
			}
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	}
}
