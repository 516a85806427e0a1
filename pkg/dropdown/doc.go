// Package dropdown implements a select widget: a trigger button showing the
// current selection and, while open, a menu of the other options.
//
// The widget owns exactly one piece of state, whether the menu is open. The
// selection belongs to the caller: activating a menu entry calls
// Props.OnChange with the entry's value and nothing else, and the caller
// passes the new CurrentOption back through SetProps.
//
//	owner := reactive.NewOwner(nil)
//	d := dropdown.New(owner, dropdown.Props{
//	    CurrentOption: "a",
//	    Options: []dropdown.Option{
//	        {Value: "a", Label: "A"},
//	        {Value: "b", Label: "B"},
//	    },
//	    OnChange: func(v string) { current = v },
//	})
//	owner.Subscribe(func() { push(d.Render()) })
//
// A CurrentOption that matches no option is not an error: the trigger simply
// renders without a label. Selecting an entry leaves the menu open unless the
// widget is built with WithCloseOnSelect(true).
package dropdown
