package ledgerentry

import "ledgerd/core/types"

// Outcome is the result of classifying and validating one request. Key is
// nonzero only when Err is nil.
type Outcome struct {
	Shape    Shape
	Key      types.Hash256
	Expected types.EntryType
	Err      *Error
}

// Derived reports whether a key is ready for lookup.
func (o Outcome) Derived() bool {
	return o.Err == nil && !o.Key.IsZero()
}

type route struct {
	shape    Shape
	expected types.EntryType
	validate validator
}

// routes is evaluated in order; the first member present in the request
// selects the shape and later members are ignored.
var routes = []route{
	{ShapeIndex, types.EntryTypeAny, validateIndex},
	{ShapeAccountRoot, types.EntryTypeAccountRoot, validateAccountRoot},
	{ShapeCheck, types.EntryTypeCheck, validateIndex},
	{ShapeDepositPreauth, types.EntryTypeDepositPreauth, validateDepositPreauth},
	{ShapeDirectory, types.EntryTypeDirectoryNode, validateDirectory},
	{ShapeEscrow, types.EntryTypeEscrow, validateEscrow},
	{ShapeEmittedTxn, types.EntryTypeEmittedTxn, validateEmittedTxn},
	{ShapeImportVLSeq, types.EntryTypeImportVLSeq, validateImportVLSeq},
	{ShapeOffer, types.EntryTypeOffer, validateOffer},
	{ShapePaymentChannel, types.EntryTypePayChannel, validateIndex},
	{ShapeURIToken, types.EntryTypeURIToken, validateURIToken},
	{ShapeRippleState, types.EntryTypeRippleState, validateRippleState},
	{ShapeTicket, types.EntryTypeTicket, validateTicket},
	{ShapeHook, types.EntryTypeHook, validateHook},
	{ShapeHookDefinition, types.EntryTypeHookDefinition, validateHookDefinition},
	{ShapeHookState, types.EntryTypeHookState, validateHookState},
	{ShapeNFTPage, types.EntryTypeNFTokenPage, validateNFTPage},
}

var legacyRoute = route{ShapeLegacy, types.EntryTypeAny, validateLegacy}

// Classify returns the shape a request selects without validating it.
func Classify(p Params) Shape {
	for _, r := range routes {
		if p.Has(r.shape.String()) {
			return r.shape
		}
	}
	if items := p.Get(legacyRoute.shape.String()).Array(); len(items) == 1 && items[0].IsString() {
		return ShapeLegacy
	}
	return ShapeUnknown
}

// Dispatch runs exactly one shape validator against the request.
func Dispatch(p Params, d KeyDeriver) Outcome {
	r, ok := selectRoute(p)
	if !ok {
		return Outcome{Shape: ShapeUnknown, Expected: types.EntryTypeAny, Err: fail(CodeUnknownOption)}
	}
	key, err := r.validate(p.Get(r.shape.String()), d)
	if err != nil {
		key = types.ZeroHash
	}
	return Outcome{Shape: r.shape, Key: key, Expected: r.expected, Err: err}
}

func selectRoute(p Params) (route, bool) {
	switch shape := Classify(p); shape {
	case ShapeUnknown:
		return route{}, false
	case ShapeLegacy:
		return legacyRoute, true
	default:
		return routes[shape], true
	}
}
