package parser

import "go-tealer/teal"

func onCompletionValue(name string) (uint64, bool) {
	v, ok := teal.LookupOnCompletion(name)
	if !ok {
		return 0, false
	}
	return uint64(v), true
}

func typeEnumValue(name string) (uint64, bool) {
	v, ok := teal.LookupTypeEnum(name)
	if !ok {
		return 0, false
	}
	return uint64(v), true
}
