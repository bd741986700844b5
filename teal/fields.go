package teal

// TransactionField identifies one of the named fields accessible through
// `txn`/`gtxn`/`gtxns`/`itxn`. Only the subset the dataflow engine tracks
// (see Field in package dataflow) gets refined; the rest still parse fine
// and are reported as unconstrained by anything that consumes them.
type TransactionField int

const (
	FieldUnknown TransactionField = iota
	FieldSender
	FieldFee
	FieldFirstValid
	FieldLastValid
	FieldReceiver
	FieldAmount
	FieldCloseRemainderTo
	FieldTypeEnum
	FieldType
	FieldXferAsset
	FieldAssetAmount
	FieldAssetSender
	FieldAssetReceiver
	FieldAssetCloseTo
	FieldGroupIndex
	FieldTxID
	FieldApplicationID
	FieldOnCompletion
	FieldApplicationArgs
	FieldNumAppArgs
	FieldAccounts
	FieldNumAccounts
	FieldApprovalProgram
	FieldClearStateProgram
	FieldRekeyTo
	FieldConfigAsset
	FieldCreatedAssetID
	FieldCreatedApplicationID
	FieldLastLog
	FieldNumAssets
	FieldAssets
	FieldNumApplications
	FieldApplications
	FieldGlobalNumUints
	FieldGlobalNumByteSlices
	FieldLocalNumUints
	FieldLocalNumByteSlices
	FieldExtraProgramPages
	FieldNonparticipation
	FieldStateProofPK
)

var transactionFieldNames = map[string]TransactionField{
	"Sender":                 FieldSender,
	"Fee":                    FieldFee,
	"FirstValid":             FieldFirstValid,
	"LastValid":              FieldLastValid,
	"Receiver":               FieldReceiver,
	"Amount":                 FieldAmount,
	"CloseRemainderTo":       FieldCloseRemainderTo,
	"TypeEnum":               FieldTypeEnum,
	"Type":                   FieldType,
	"XferAsset":              FieldXferAsset,
	"AssetAmount":            FieldAssetAmount,
	"AssetSender":            FieldAssetSender,
	"AssetReceiver":          FieldAssetReceiver,
	"AssetCloseTo":           FieldAssetCloseTo,
	"GroupIndex":             FieldGroupIndex,
	"TxID":                   FieldTxID,
	"ApplicationID":          FieldApplicationID,
	"OnCompletion":           FieldOnCompletion,
	"ApplicationArgs":        FieldApplicationArgs,
	"NumAppArgs":             FieldNumAppArgs,
	"Accounts":               FieldAccounts,
	"NumAccounts":            FieldNumAccounts,
	"ApprovalProgram":        FieldApprovalProgram,
	"ClearStateProgram":      FieldClearStateProgram,
	"RekeyTo":                FieldRekeyTo,
	"ConfigAsset":            FieldConfigAsset,
	"CreatedAssetID":         FieldCreatedAssetID,
	"CreatedApplicationID":   FieldCreatedApplicationID,
	"LastLog":                FieldLastLog,
	"NumAssets":              FieldNumAssets,
	"Assets":                 FieldAssets,
	"NumApplications":        FieldNumApplications,
	"Applications":           FieldApplications,
	"GlobalNumUints":         FieldGlobalNumUints,
	"GlobalNumByteSlices":    FieldGlobalNumByteSlices,
	"LocalNumUints":          FieldLocalNumUints,
	"LocalNumByteSlices":     FieldLocalNumByteSlices,
	"ExtraProgramPages":      FieldExtraProgramPages,
	"Nonparticipation":       FieldNonparticipation,
	"StateProofPK":           FieldStateProofPK,
}

// LookupTransactionField resolves a `txn`-style field name, e.g. "OnCompletion".
func LookupTransactionField(name string) (TransactionField, bool) {
	f, ok := transactionFieldNames[name]
	return f, ok
}

func (f TransactionField) String() string {
	for name, v := range transactionFieldNames {
		if v == f {
			return name
		}
	}
	return "Unknown"
}

// GlobalField identifies a field accessible through the `global` opcode.
type GlobalField int

const (
	GlobalUnknown GlobalField = iota
	GlobalMinTxnFee
	GlobalMinBalance
	GlobalMaxTxnLife
	GlobalZeroAddress
	GlobalGroupSize
	GlobalLogicSigVersion
	GlobalRound
	GlobalLatestTimestamp
	GlobalCurrentApplicationID
	GlobalCreatorAddress
	GlobalCurrentApplicationAddress
	GlobalGroupID
	GlobalOpcodeBudget
	GlobalCallerApplicationID
	GlobalCallerApplicationAddress
)

var globalFieldNames = map[string]GlobalField{
	"MinTxnFee":                  GlobalMinTxnFee,
	"MinBalance":                 GlobalMinBalance,
	"MaxTxnLife":                 GlobalMaxTxnLife,
	"ZeroAddress":                GlobalZeroAddress,
	"GroupSize":                  GlobalGroupSize,
	"LogicSigVersion":            GlobalLogicSigVersion,
	"Round":                      GlobalRound,
	"LatestTimestamp":            GlobalLatestTimestamp,
	"CurrentApplicationID":       GlobalCurrentApplicationID,
	"CreatorAddress":             GlobalCreatorAddress,
	"CurrentApplicationAddress":  GlobalCurrentApplicationAddress,
	"GroupID":                    GlobalGroupID,
	"OpcodeBudget":                GlobalOpcodeBudget,
	"CallerApplicationID":        GlobalCallerApplicationID,
	"CallerApplicationAddress":   GlobalCallerApplicationAddress,
}

// LookupGlobalField resolves a `global`-style field name, e.g. "GroupSize".
func LookupGlobalField(name string) (GlobalField, bool) {
	f, ok := globalFieldNames[name]
	return f, ok
}

func (f GlobalField) String() string {
	for name, v := range globalFieldNames {
		if v == f {
			return name
		}
	}
	return "Unknown"
}

// OnCompletion mirrors the named constants usable after `int` / compared
// against txn OnCompletion.
type OnCompletion int

const (
	NoOp OnCompletion = iota
	OptIn
	CloseOut
	ClearState
	UpdateApplication
	DeleteApplication
)

var onCompletionNames = map[string]OnCompletion{
	"NoOp":               NoOp,
	"OptIn":              OptIn,
	"CloseOut":           CloseOut,
	"ClearState":         ClearState,
	"UpdateApplication":  UpdateApplication,
	"DeleteApplication":  DeleteApplication,
}

// LookupOnCompletion resolves a named OnCompletion constant used after `int`.
func LookupOnCompletion(name string) (OnCompletion, bool) {
	v, ok := onCompletionNames[name]
	return v, ok
}

func (v OnCompletion) String() string {
	for name, c := range onCompletionNames {
		if c == v {
			return name
		}
	}
	return "Unknown"
}

// TypeEnum mirrors the named transaction-type constants usable after `int`.
type TypeEnum int

const (
	TypeUnknown TypeEnum = iota
	TypePay
	TypeKeyreg
	TypeAcfg
	TypeAxfer
	TypeAfrz
	TypeAppl
)

var typeEnumNames = map[string]TypeEnum{
	"pay":    TypePay,
	"keyreg": TypeKeyreg,
	"acfg":   TypeAcfg,
	"axfer":  TypeAxfer,
	"afrz":   TypeAfrz,
	"appl":   TypeAppl,
}

// LookupTypeEnum resolves a named transaction-type constant, e.g. "pay".
func LookupTypeEnum(name string) (TypeEnum, bool) {
	v, ok := typeEnumNames[name]
	return v, ok
}

// AssetHoldingField, AssetParamsField, AppParamsField and AcctParamsField are
// the remaining named-field families used by asset_holding_get,
// asset_params_get, app_params_get and acct_params_get. They are not
// tracked by the dataflow lattice (spec.md §3), so a plain string is enough
// to round-trip them through parsing and pretty-printing.
type AssetHoldingField string
type AssetParamsField string
type AppParamsField string
type AcctParamsField string
