// Package model converts controller JSON dictionaries into typed objects.
//
// Each entity kind declares its own fields and a list of parent kinds.
// The effective model of a kind is computed once, when the kind is declared,
// by folding the fields of its ancestors base-first and letting later
// declarations of the same local name replace earlier ones:
//
//	var Device = model.NewKind("Device", nil,
//	    model.String("id").From("_id"),
//	    model.String("mac_address").From("mac"),
//	    model.Bool("adopted"),
//	)
//
//	var Switch = model.NewKind("Switch", []*model.Kind{Device},
//	    model.Int("stp_priority"),
//	)
//
//	obj := model.New(Switch)
//	if err := obj.Populate(raw); err != nil {
//	    // err lists fields whose values could not be coerced; the rest were set
//	}
//	mac := obj.String("mac_address")
//
// Models are immutable after declaration and may be shared between
// goroutines. Objects are not synchronized.
package model
